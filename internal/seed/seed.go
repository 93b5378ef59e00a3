// Package seed populates a development database with fake users and posts.
// It is intended for local development and tests only.
package seed

import (
	"context"
	"fmt"
	"strings"

	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/security"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is set on every seeded account. It satisfies the password policy.
const DefaultPassword = "Password123"

const batchSize = 100

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	IconURL     string
	// Seed makes the generated data reproducible when non-zero.
	Seed int64
}

// Result counts what a run created.
type Result struct {
	Users int
	Posts int
}

// Seeder writes fake data through a GORM handle.
type Seeder struct {
	db     *gorm.DB
	hasher security.PasswordHasher
}

func NewSeeder(db *gorm.DB, hasher security.PasswordHasher) *Seeder {
	return &Seeder{db: db, hasher: hasher}
}

// Run seeds users first, then spreads posts across them at random.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.ShouldClean {
		if err := s.ClearAll(ctx); err != nil {
			return nil, err
		}
	}

	faker := gofakeit.New(opts.Seed)

	users, err := s.createUsers(ctx, faker, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create users: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "seeded users", "count", len(users))

	posts, err := s.createPosts(ctx, faker, users, opts.NumPosts)
	if err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "seeded posts", "count", len(posts))

	return &Result{Users: len(users), Posts: len(posts)}, nil
}

// ClearAll deletes every post and user. Posts go first because of the author foreign key.
func (s *Seeder) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("clear posts: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		return nil
	})
}

func (s *Seeder) createUsers(ctx context.Context, faker *gofakeit.Faker, opts Options) ([]models.User, error) {
	if opts.NumUsers <= 0 {
		return nil, nil
	}

	// Every seeded account shares one hash.
	hash, err := s.hasher.Hash(DefaultPassword)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		users = append(users, models.User{
			Username: fmt.Sprintf("%s%d", strings.ToLower(faker.Username()), i+1),
			Name:     faker.Name(),
			Password: hash,
			IconURL:  opts.IconURL,
		})
	}

	if err := s.db.WithContext(ctx).CreateInBatches(&users, batchSize).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Seeder) createPosts(ctx context.Context, faker *gofakeit.Faker, users []models.User, n int) ([]models.Post, error) {
	if n <= 0 || len(users) == 0 {
		return nil, nil
	}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[faker.Number(0, len(users)-1)]
		post := models.Post{
			Title:    faker.Sentence(5),
			Content:  faker.Paragraph(1, 3, 12, "\n"),
			AuthorID: author.ID,
		}
		if faker.Bool() {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", faker.UUID())
		}
		posts = append(posts, post)
	}

	if err := s.db.WithContext(ctx).CreateInBatches(&posts, batchSize).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
