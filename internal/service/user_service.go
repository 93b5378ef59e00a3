// Package service holds the account and post business rules between HTTP handlers and repositories.
package service

import (
	"context"
	"log/slog"
	"strings"

	"scribe/internal/models"
	"scribe/internal/observability"
	"scribe/internal/repository"
	"scribe/internal/security"
	"scribe/internal/validation"
)

// Client-facing account messages.
const (
	MsgNameRequired        = "name is required"
	MsgPasswordRequired    = "password is required"
	MsgPasswordMismatch    = "passwords do not match"
	MsgCredentialsRequired = "username and password are required"
	MsgUserMissing         = "user does not exist"
	MsgInvalidPassword     = "invalid password"
	MsgProfileFieldsNeeded = "name or icon is required"
	MsgUserNotFound        = "user not found"
)

// TokenIssuer signs access tokens for a user id.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

type UserService struct {
	userRepo    repository.UserRepository
	hasher      security.PasswordHasher
	tokens      TokenIssuer
	defaultIcon string
}

type SignUpInput struct {
	Username        string
	Name            string
	Password        string
	ConfirmPassword string
}

type UpdateProfileInput struct {
	UserID uint
	Name   string
	Icon   string
}

func NewUserService(
	userRepo repository.UserRepository,
	hasher security.PasswordHasher,
	tokens TokenIssuer,
	defaultIcon string,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		hasher:      hasher,
		tokens:      tokens,
		defaultIcon: defaultIcon,
	}
}

// SignUp validates the registration, hashes the password and stores the user
// with the default icon. Checks run in a fixed order and the first failure wins.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (user *models.User, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "SignUp")
	defer func() {
		observability.EndSpan(span, err)
		observability.AccountEvents.WithLabelValues("signup", outcome(err)).Inc()
	}()

	name := strings.TrimSpace(in.Name)
	username := strings.TrimSpace(in.Username)

	if name == "" {
		return nil, models.NewValidationError(MsgNameRequired)
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Password == "" {
		return nil, models.NewValidationError(MsgPasswordRequired)
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Password != in.ConfirmPassword {
		return nil, models.NewValidationError(MsgPasswordMismatch)
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError(repository.MsgUserExists)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user = &models.User{
		Username: username,
		Name:     name,
		Password: hash,
		IconURL:  s.defaultIcon,
	}
	// a concurrent signup with the same username surfaces here as a unique violation
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID)
	return user, nil
}

// SignIn checks the credentials and returns a signed token for the user.
func (s *UserService) SignIn(ctx context.Context, username, password string) (token string, user *models.User, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "SignIn")
	defer func() {
		observability.EndSpan(span, err)
		observability.AccountEvents.WithLabelValues("signin", outcome(err)).Inc()
	}()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, models.NewValidationError(MsgCredentialsRequired)
	}

	user, err = s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, models.NewValidationError(MsgUserMissing)
	}
	if !s.hasher.Check(password, user.Password) {
		return "", nil, models.NewValidationError(MsgInvalidPassword)
	}

	token, err = s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}
	return token, user, nil
}

// UpdateProfile changes the name and/or icon. Only fields that are supplied
// and differ from the stored value are written; if none differ the current
// user is returned unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	icon := strings.TrimSpace(in.Icon)
	if name == "" && icon == "" {
		return nil, models.NewValidationError(MsgProfileFieldsNeeded)
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewValidationError(MsgUserNotFound)
		}
		return nil, err
	}

	nameChanged := name != "" && name != user.Name
	iconChanged := icon != "" && icon != user.IconURL

	switch {
	case nameChanged && iconChanged:
		err = s.userRepo.UpdateProfile(ctx, user.ID, name, icon)
	case nameChanged:
		err = s.userRepo.UpdateName(ctx, user.ID, name)
	case iconChanged:
		err = s.userRepo.UpdateIcon(ctx, user.ID, icon)
	default:
		return user, nil
	}
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewValidationError(MsgUserNotFound)
		}
		return nil, err
	}

	if nameChanged {
		user.Name = name
	}
	if iconChanged {
		user.IconURL = icon
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case models.HasCode(err, models.CodeValidation):
		return "rejected"
	default:
		return "error"
	}
}
