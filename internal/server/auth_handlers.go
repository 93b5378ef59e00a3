package server

import (
	"scribe/internal/models"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

type signUpRequest struct {
	Username        string `json:"username"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUp handles POST /signup
// @Summary Register a user
// @Description Validates the form, hashes the password and creates the account with the default icon.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body signUpRequest true "Signup request"
// @Success 201 {object} object{status=string,message=string,user=models.PublicUser}
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /signup [post]
func (s *Server) SignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError(msgInvalidBody))
	}

	user, err := s.userSvc().SignUp(c.UserContext(), service.SignUpInput{
		Username:        req.Username,
		Name:            req.Name,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondOK(c, fiber.StatusCreated, "user created", fiber.Map{
		"user": user.Public(),
	})
}

// SignIn handles POST /signin
// @Summary Sign in
// @Description Checks the credentials and returns a bearer token valid for 24 hours.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body signInRequest true "Signin request"
// @Success 200 {object} object{status=string,message=string,token=string,user=models.PublicUser}
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /signin [post]
func (s *Server) SignIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError(msgInvalidBody))
	}

	token, user, err := s.userSvc().SignIn(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return models.RespondOK(c, fiber.StatusOK, "access granted", fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}
