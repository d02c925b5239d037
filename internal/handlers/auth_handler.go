package handlers

import (
	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles authentication for users, organizers and admins
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /auth/login [post]
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	loginResp, err := h.authSvc.Authenticate(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return utils.Success(c, loginResp, "Login successful")
}

// GetProfile returns the user or organizer behind the token
// @Summary Get profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /auth/profile [get]
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	id := identity(c)

	profile, err := h.authSvc.GetProfile(id.UserID, id.Role)
	if err != nil {
		return fail(c, err)
	}

	return utils.Success(c, profile, "Profile retrieved successfully")
}
