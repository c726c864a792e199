package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hometasks/internal/serializer"
	"hometasks/internal/service"
)

// UserHandler handles account endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,max=25"`
	Password string  `json:"password" validate:"required,max=72"`
	Email    string  `json:"email" validate:"required,email"`
	Img      *string `json:"img"`
}

// VerifyUserRequest represents a credential check.
type VerifyUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AddUser godoc
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} serializer.UserView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/add [post]
func (h *UserHandler) AddUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	user, err := h.svc.CreateUser(c.Request().Context(), service.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Img:      req.Img,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, serializer.User(*user))
}

// VerifyUser godoc
// @Summary Verify a username and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body VerifyUserRequest true "Credentials"
// @Success 200 {object} serializer.UserView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/verify [post]
func (h *UserHandler) VerifyUser(c echo.Context) error {
	var req VerifyUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	user, err := h.svc.VerifyUser(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.User(*user))
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} serializer.UserView
// @Router /user/get [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.Users(users))
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} serializer.UserView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/get/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.User(*user))
}

// DeleteUser godoc
// @Summary Delete a user with its members, lists and events
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {string} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/delete/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, "The user has been deleted")
}
