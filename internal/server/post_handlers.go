package server

import (
	"scribe/internal/models"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

// GetAllPosts handles GET /post/all
// @Summary List posts
// @Tags posts
// @Produce json
// @Param limit query int false "Page size (default 10, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{status=string,posts=[]models.Post}
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /post/all [get]
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return nil
	}

	posts, err := s.postSvc().ListPosts(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondOK(c, fiber.StatusOK, "", fiber.Map{"posts": posts})
}

// GetPostFromUser handles GET /user/:id/post
// @Summary List the authenticated user's posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{status=string,posts=[]models.Post}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /user/{id}/post [get]
func (s *Server) GetPostFromUser(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return nil
	}
	page, err := parsePagination(c)
	if err != nil {
		return nil
	}

	posts, err := s.postSvc().ListUserPosts(c.UserContext(), userID, page)
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondOK(c, fiber.StatusOK, "", fiber.Map{"posts": posts})
}

// GetPost handles GET /post/:id
// @Summary Get a post with its author's name
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{status=string,post=models.Post,author=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /post/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, author, err := s.postSvc().GetPost(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	payload := fiber.Map{"post": post}
	if author != "" {
		payload["author"] = author
	}
	return models.RespondOK(c, fiber.StatusOK, "", payload)
}

// WritePost handles POST /user/:id/post/write
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body postRequest true "Post"
// @Success 200 {object} object{status=string,post=models.Post}
// @Failure 401 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /user/{id}/post/write [post]
func (s *Server) WritePost(c *fiber.Ctx) error {
	authorID, err := actingUserID(c)
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError(msgInvalidBody))
	}

	post, err := s.postSvc().CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondOK(c, fiber.StatusOK, "", fiber.Map{"post": post})
}

// UpdatePost handles PATCH /user/:id/post/edit/:postId
// @Summary Edit one of the authenticated user's posts
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param postId path int true "Post ID"
// @Param request body postRequest true "Fields to overwrite"
// @Success 200 {object} object{status=string,post=models.Post}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /user/{id}/post/edit/{postId} [patch]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return nil
	}
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError(msgInvalidBody))
	}

	post, err := s.postSvc().UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:   userID,
		PostID:   postID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondOK(c, fiber.StatusOK, "", fiber.Map{"post": post})
}

// DeletePost handles DELETE /user/:id/post/:postId
// @Summary Delete one of the authenticated user's posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param postId path int true "Post ID"
// @Success 200 {object} object{status=string,post=models.Post}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /user/{id}/post/{postId} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return nil
	}
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postSvc().DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondOK(c, fiber.StatusOK, "", fiber.Map{"post": post})
}
