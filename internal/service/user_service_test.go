package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"scribe/internal/models"
	"scribe/internal/repository"
	"scribe/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testIcon = "https://img.example.com/default.png"

func newTestUserService(t *testing.T, repo *userRepoStub) (*UserService, *security.TokenService) {
	t.Helper()
	tokens, err := security.NewTokenService("service-test-secret-0123456789abcdef", time.Hour)
	require.NoError(t, err)
	return NewUserService(repo, security.NewBcryptHasher(bcrypt.MinCost), tokens, testIcon), tokens
}

func TestUserService_SignUp_ValidationOrder(t *testing.T) {
	t.Parallel()

	valid := SignUpInput{Username: "alice", Name: "Alice", Password: "Password1", ConfirmPassword: "Password1"}
	tests := []struct {
		name    string
		mutate  func(in *SignUpInput)
		message string
	}{
		{"everything missing", func(in *SignUpInput) { *in = SignUpInput{} }, MsgNameRequired},
		{"missing name", func(in *SignUpInput) { in.Name = "  " }, MsgNameRequired},
		{"missing username", func(in *SignUpInput) { in.Username = "" }, "username is required"},
		{"short username", func(in *SignUpInput) { in.Username = "ab" }, "username must be 3+ chars"},
		{"missing password", func(in *SignUpInput) { in.Password = "" }, MsgPasswordRequired},
		{"weak password", func(in *SignUpInput) { in.Password, in.ConfirmPassword = "password", "password" }, "password must be at least 8 characters and contain 1 number and 1 uppercase letter"},
		{"password over bcrypt limit", func(in *SignUpInput) {
			long := "A1" + strings.Repeat("x", 80)
			in.Password, in.ConfirmPassword = long, long
		}, "password must be at most 72 bytes"},
		{"mismatch", func(in *SignUpInput) { in.ConfirmPassword = "Password2" }, MsgPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := noopUserRepo()
			repo.createFn = func(_ context.Context, _ *models.User) error {
				t.Fatal("create must not be called")
				return nil
			}
			svc, _ := newTestUserService(t, repo)

			in := valid
			tt.mutate(&in)
			_, err := svc.SignUp(context.Background(), in)
			assertValidationError(t, err, tt.message)
		})
	}
}

func TestUserService_SignUp_Success(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	var stored *models.User
	repo.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 11
		stored = u
		return nil
	}
	svc, _ := newTestUserService(t, repo)

	user, err := svc.SignUp(context.Background(), SignUpInput{
		Username:        " alice ",
		Name:            "Alice",
		Password:        "Password1",
		ConfirmPassword: "Password1",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, uint(11), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, testIcon, user.IconURL)
	assert.NotEqual(t, "Password1", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Password1")))
}

func TestUserService_SignUp_UsernameTaken(t *testing.T) {
	t.Parallel()

	in := SignUpInput{Username: "alice", Name: "Alice", Password: "Password1", ConfirmPassword: "Password1"}

	t.Run("fast path", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1, Username: "alice"}, nil
		}
		svc, _ := newTestUserService(t, repo)

		_, err := svc.SignUp(context.Background(), in)
		assertValidationError(t, err, repository.MsgUserExists)
	})

	t.Run("concurrent insert", func(t *testing.T) {
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, _ *models.User) error {
			return models.NewValidationError(repository.MsgUserExists)
		}
		svc, _ := newTestUserService(t, repo)

		_, err := svc.SignUp(context.Background(), in)
		assertValidationError(t, err, repository.MsgUserExists)
	})
}

func TestUserService_SignUp_StoreFailure(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
		return nil, models.NewInternalError(errors.New("connection refused"))
	}
	svc, _ := newTestUserService(t, repo)

	_, err := svc.SignUp(context.Background(), SignUpInput{Username: "alice", Name: "Alice", Password: "Password1", ConfirmPassword: "Password1"})
	assertAppError(t, err, models.CodeInternal, "")
}

func TestUserService_SignIn(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	require.NoError(t, err)
	alice := &models.User{ID: 9, Username: "alice", Name: "Alice", Password: string(hash)}

	lookup := func(_ context.Context, username string) (*models.User, error) {
		if username == "alice" {
			copied := *alice
			return &copied, nil
		}
		return nil, nil
	}

	tests := []struct {
		name     string
		username string
		password string
		message  string
	}{
		{"missing username", "", "Password1", MsgCredentialsRequired},
		{"missing password", "alice", "", MsgCredentialsRequired},
		{"unknown user", "bob", "Password1", MsgUserMissing},
		{"wrong password", "alice", "Password2", MsgInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := noopUserRepo()
			repo.getByUsernameFn = lookup
			svc, _ := newTestUserService(t, repo)

			_, _, err := svc.SignIn(context.Background(), tt.username, tt.password)
			assertValidationError(t, err, tt.message)
		})
	}

	t.Run("success", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByUsernameFn = lookup
		svc, tokens := newTestUserService(t, repo)

		token, user, err := svc.SignIn(context.Background(), "alice", "Password1")
		require.NoError(t, err)
		assert.Equal(t, uint(9), user.ID)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, uint(9), claims.UserID)
	})
}

type failingIssuer struct{}

func (failingIssuer) Issue(uint) (string, error) { return "", errors.New("signer down") }

func TestUserService_SignIn_TokenFailure(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
		return &models.User{ID: 1, Username: "alice", Password: string(hash)}, nil
	}
	svc := NewUserService(repo, security.NewBcryptHasher(bcrypt.MinCost), failingIssuer{}, testIcon)

	_, _, err = svc.SignIn(context.Background(), "alice", "Password1")
	assertAppError(t, err, models.CodeInternal, "")
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	current := func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Name: "Alice", IconURL: "old.png"}, nil
	}

	t.Run("requires a field", func(t *testing.T) {
		svc, _ := newTestUserService(t, noopUserRepo())
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Name: " "})
		assertValidationError(t, err, MsgProfileFieldsNeeded)
	})

	t.Run("missing user is a validation error", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
			return nil, models.NewNotFoundError("user not found")
		}
		svc, _ := newTestUserService(t, repo)

		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Name: "Bob"})
		assertValidationError(t, err, MsgUserNotFound)
	})

	t.Run("full update", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = current
		var called bool
		repo.updateProfileFn = func(_ context.Context, id uint, name, icon string) error {
			called = true
			assert.Equal(t, uint(1), id)
			assert.Equal(t, "Bob", name)
			assert.Equal(t, "new.png", icon)
			return nil
		}
		svc, _ := newTestUserService(t, repo)

		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Name: "Bob", Icon: "new.png"})
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "Bob", user.Name)
		assert.Equal(t, "new.png", user.IconURL)
	})

	t.Run("name only when icon unchanged", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = current
		repo.updateProfileFn = func(_ context.Context, _ uint, _, _ string) error {
			t.Fatal("full update not expected")
			return nil
		}
		var gotName string
		repo.updateNameFn = func(_ context.Context, _ uint, name string) error {
			gotName = name
			return nil
		}
		svc, _ := newTestUserService(t, repo)

		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Name: "Bob", Icon: "old.png"})
		require.NoError(t, err)
		assert.Equal(t, "Bob", gotName)
		assert.Equal(t, "old.png", user.IconURL)
	})

	t.Run("icon only", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = current
		var gotIcon string
		repo.updateIconFn = func(_ context.Context, _ uint, icon string) error {
			gotIcon = icon
			return nil
		}
		svc, _ := newTestUserService(t, repo)

		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Icon: "new.png"})
		require.NoError(t, err)
		assert.Equal(t, "new.png", gotIcon)
		assert.Equal(t, "Alice", user.Name)
	})

	t.Run("no-op returns current user", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = current
		fail := func() { t.Fatal("no write expected") }
		repo.updateProfileFn = func(_ context.Context, _ uint, _, _ string) error { fail(); return nil }
		repo.updateNameFn = func(_ context.Context, _ uint, _ string) error { fail(); return nil }
		repo.updateIconFn = func(_ context.Context, _ uint, _ string) error { fail(); return nil }
		svc, _ := newTestUserService(t, repo)

		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Name: "Alice", Icon: "old.png"})
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = current
		repo.updateNameFn = func(_ context.Context, _ uint, _ string) error {
			return models.NewInternalError(errors.New("deadlock"))
		}
		svc, _ := newTestUserService(t, repo)

		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Name: "Bob"})
		assertAppError(t, err, models.CodeInternal, "")
	})
}

func TestUserService_GetUserByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
		return nil, models.NewNotFoundError("user not found")
	}
	svc, _ := newTestUserService(t, repo)

	_, err := svc.GetUserByID(context.Background(), 3)
	assertAppError(t, err, models.CodeNotFound, "user not found")
}
