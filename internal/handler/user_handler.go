package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"studentportal/internal/ids"
	"studentportal/internal/model"
	"studentportal/internal/service"
)

// UserHandler handles register, login and user lookups.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email string `json:"email"`
}

// UserSummary is the register/login response.
type UserSummary struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

func summarize(u *model.User) UserSummary {
	role := u.Role
	if role == "" {
		role = model.RoleStudent
	}
	return UserSummary{ID: ids.Encode(u.ID), Name: u.Name, Email: u.Email, Role: role}
}

// Register godoc
// @Summary Register a student
// @Description Returns the existing user unchanged when the email is already known.
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} UserSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	user, err := h.svc.Register(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summarize(user))
}

// Login godoc
// @Summary Log in by email
// @Description Demo login without credentials. Unknown emails are provisioned as students.
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login data"
// @Success 200 {object} UserSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	user, err := h.svc.Login(c.Request().Context(), req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summarize(user))
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondDocument(c, http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param role query string false "Filter by role"
// @Success 200 {array} map[string]interface{}
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return respondError(c, err)
	}
	return respondDocuments(c, users)
}
