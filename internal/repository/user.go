package repository

import (
	"context"
	"errors"

	"scribe/internal/cache"
	"scribe/internal/models"
	"scribe/internal/observability"

	"gorm.io/gorm"
)

// MsgUserExists is returned when a username is already taken.
const MsgUserExists = "user already exists"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, id uint, name, iconURL string) error
	UpdateName(ctx context.Context, id uint, name string) error
	UpdateIcon(ctx context.Context, id uint, iconURL string) error
	List(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, metrics: observability.NewDatabaseMetrics("users")}
}

// GetByID returns the user or a NOT_FOUND error. Results are cached; the
// password hash is not serialized, so cached users carry an empty Password.
func (r *userRepository) GetByID(ctx context.Context, id uint) (user *models.User, err error) {
	ctx, done := instrumented(ctx, r.metrics, "users", "GetByID")
	defer func() { done(err) }()

	var u models.User
	err = cache.Aside(ctx, cache.UserKey(id), &u, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("user not found")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername returns nil, nil when no user has username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (user *models.User, err error) {
	ctx, done := instrumented(ctx, r.metrics, "users", "GetByUsername")
	defer func() { done(err) }()

	var u models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (err error) {
	ctx, done := instrumented(ctx, r.metrics, "users", "Create")
	defer func() { done(err) }()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError(MsgUserExists)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uint, name, iconURL string) error {
	return r.updateFields(ctx, id, map[string]any{"name": name, "icon_url": iconURL})
}

func (r *userRepository) UpdateName(ctx context.Context, id uint, name string) error {
	return r.updateFields(ctx, id, map[string]any{"name": name})
}

func (r *userRepository) UpdateIcon(ctx context.Context, id uint, iconURL string) error {
	return r.updateFields(ctx, id, map[string]any{"icon_url": iconURL})
}

func (r *userRepository) updateFields(ctx context.Context, id uint, fields map[string]any) (err error) {
	ctx, done := instrumented(ctx, r.metrics, "users", "Update")
	defer func() { done(err) }()

	res := r.db.WithContext(ctx).Model(&models.User{ID: id}).Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	cache.InvalidateUser(ctx, id)
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("user not found")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) (users []models.User, err error) {
	ctx, done := instrumented(ctx, r.metrics, "users", "List")
	defer func() { done(err) }()

	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
