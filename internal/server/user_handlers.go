package server

import (
	"scribe/internal/models"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type updateNameRequest struct {
	NewName string `json:"newName"`
}

// GetUser handles GET /user/:id
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} object{status=string,message=string,user=models.PublicUser}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /user/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	return s.respondUser(c)
}

// GetAuthor handles GET /author/:id, the public lookup used to show post authors.
// @Summary Look up an author
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{status=string,message=string,user=models.PublicUser}
// @Failure 404 {object} models.ErrorResponse
// @Router /author/{id} [get]
func (s *Server) GetAuthor(c *fiber.Ctx) error {
	return s.respondUser(c)
}

func (s *Server) respondUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userSvc().GetUserByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondOK(c, fiber.StatusOK, "user found", fiber.Map{
		"user": user.Public(),
	})
}

// ListUsers handles GET /list
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {object} object{status=string,users=[]models.PublicUser}
// @Failure 500 {object} models.ErrorResponse
// @Router /list [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userSvc().ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondOK(c, fiber.StatusOK, "", fiber.Map{
		"users": models.PublicUsers(users),
	})
}

// UpdateProfile handles PATCH /user/:id/update
// @Summary Update name and/or icon
// @Description Writes only the supplied fields that differ; an unchanged profile is returned as is.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body updateProfileRequest true "Profile fields"
// @Success 200 {object} object{status=string,message=string,user=models.PublicUser}
// @Failure 401 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /user/{id}/update [patch]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return nil
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError(msgInvalidBody))
	}

	return s.updateProfile(c, service.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
	})
}

// UpdateName handles POST /user/update for the token's user.
// @Summary Rename the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateNameRequest true "New name"
// @Success 200 {object} object{status=string,message=string,user=models.PublicUser}
// @Failure 401 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /user/update [post]
func (s *Server) UpdateName(c *fiber.Ctx) error {
	userID, err := actingUserID(c)
	if err != nil {
		return nil
	}

	var req updateNameRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError(msgInvalidBody))
	}

	return s.updateProfile(c, service.UpdateProfileInput{
		UserID: userID,
		Name:   req.NewName,
	})
}

func (s *Server) updateProfile(c *fiber.Ctx, in service.UpdateProfileInput) error {
	user, err := s.userSvc().UpdateProfile(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondOK(c, fiber.StatusOK, "profile updated", fiber.Map{
		"user": user.Public(),
	})
}
