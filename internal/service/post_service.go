package service

import (
	"context"
	"log/slog"
	"strings"

	"scribe/internal/models"
	"scribe/internal/observability"
	"scribe/internal/repository"
)

// Client-facing post messages.
const (
	MsgNoPosts         = "no posts found"
	MsgTitleRequired   = "title is required"
	MsgContentRequired = "content is required"
	MsgNotPostOwner    = "you can only modify your own posts"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
	ImageURL string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Content  string
	ImageURL string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// ListPosts returns one page of all posts. An empty page is NOT_FOUND.
func (s *PostService) ListPosts(ctx context.Context, page Page) ([]models.Post, error) {
	posts, err := s.postRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, models.NewNotFoundError(MsgNoPosts)
	}
	return posts, nil
}

// ListUserPosts returns one page of authorID's posts. An empty page is NOT_FOUND.
func (s *PostService) ListUserPosts(ctx context.Context, authorID uint, page Page) ([]models.Post, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, authorID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, models.NewNotFoundError(MsgNoPosts)
	}
	return posts, nil
}

// GetPost returns the post and its author's display name. The name is empty
// when the author record no longer exists.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, string, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	author, err := s.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			slog.WarnContext(ctx, "post author missing", "post_id", post.ID, "author_id", post.AuthorID)
			return post, "", nil
		}
		return nil, "", err
	}
	return post, author.Name, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError(MsgTitleRequired)
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError(MsgContentRequired)
	}

	post := &models.Post{
		Title:    title,
		Content:  in.Content,
		ImageURL: strings.TrimSpace(in.ImageURL),
		AuthorID: in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostWrites.WithLabelValues("create").Inc()
	return post, nil
}

// UpdatePost overwrites the non-empty fields of a post owned by in.UserID.
// Writing identical values is allowed and returns the record.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError(MsgNotPostOwner)
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		post.Title = title
	}
	if strings.TrimSpace(in.Content) != "" {
		post.Content = in.Content
	}
	if imageURL := strings.TrimSpace(in.ImageURL); imageURL != "" {
		post.ImageURL = imageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	observability.PostWrites.WithLabelValues("update").Inc()
	return post, nil
}

// DeletePost removes a post owned by in.UserID and returns the deleted record.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewNotFoundError(repository.MsgPostGone)
		}
		return nil, err
	}

	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError(MsgNotPostOwner)
	}

	deleted, err := s.postRepo.Delete(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	observability.PostWrites.WithLabelValues("delete").Inc()
	return deleted, nil
}
