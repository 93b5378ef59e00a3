package repository

import (
	"context"
	"errors"

	"scribe/internal/cache"
	"scribe/internal/models"
	"scribe/internal/observability"

	"gorm.io/gorm"
)

// Post lookup messages.
const (
	MsgPostNotFound = "post not found"
	MsgPostGone     = "post does not exist"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) (*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, metrics: observability.NewDatabaseMetrics("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (err error) {
	ctx, done := instrumented(ctx, r.metrics, "posts", "Create")
	defer func() { done(err) }()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID returns the post or a NOT_FOUND error.
func (r *postRepository) GetByID(ctx context.Context, id uint) (post *models.Post, err error) {
	ctx, done := instrumented(ctx, r.metrics, "posts", "GetByID")
	defer func() { done(err) }()

	var p models.Post
	err = cache.Aside(ctx, cache.PostKey(id), &p, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError(MsgPostNotFound)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns one page of posts in id order.
func (r *postRepository) List(ctx context.Context, limit, offset int) (posts []models.Post, err error) {
	ctx, done := instrumented(ctx, r.metrics, "posts", "List")
	defer func() { done(err) }()

	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListByAuthor returns one page of the author's posts in id order.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) (posts []models.Post, err error) {
	ctx, done := instrumented(ctx, r.metrics, "posts", "ListByAuthor")
	defer func() { done(err) }()

	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Update writes title, content and image of post.
func (r *postRepository) Update(ctx context.Context, post *models.Post) (err error) {
	ctx, done := instrumented(ctx, r.metrics, "posts", "Update")
	defer func() { done(err) }()

	res := r.db.WithContext(ctx).
		Model(post).
		Select("title", "content", "image_url", "updated_at").
		Updates(post)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	cache.InvalidatePost(ctx, post.ID)
	if res.RowsAffected == 0 {
		return models.NewNotFoundError(MsgPostNotFound)
	}
	return nil
}

// Delete removes the post and returns the record as it was.
func (r *postRepository) Delete(ctx context.Context, id uint) (post *models.Post, err error) {
	ctx, done := instrumented(ctx, r.metrics, "posts", "Delete")
	defer func() { done(err) }()

	var p models.Post
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(MsgPostGone)
		}
		return nil, models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return &p, nil
}
