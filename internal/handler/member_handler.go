package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hometasks/internal/serializer"
	"hometasks/internal/service"
)

// MemberHandler handles family member endpoints.
type MemberHandler struct {
	svc service.MemberService
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(svc service.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

// CreateMemberRequest represents a new family member. IsAdmin is a pointer so
// that an explicit false passes the required check.
type CreateMemberRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	IsAdmin   *bool  `json:"is_admin" validate:"required"`
	UserID    uint   `json:"user_id" validate:"required"`
}

// AddMember godoc
// @Summary Add a family member to a user
// @Tags members
// @Accept json
// @Produce json
// @Param request body CreateMemberRequest true "Member data"
// @Success 201 {object} serializer.MemberView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /member/add [post]
func (h *MemberHandler) AddMember(c echo.Context) error {
	var req CreateMemberRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	member, err := h.svc.AddMember(c.Request().Context(), service.CreateMemberInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   *req.IsAdmin,
		UserID:    req.UserID,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, serializer.Member(*member))
}

// GetMember godoc
// @Summary Get a family member with its list items
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} serializer.MemberView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /member/get/{id} [get]
func (h *MemberHandler) GetMember(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	member, err := h.svc.GetMember(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.Member(*member))
}

// ListMembers godoc
// @Summary List the family members of a user
// @Tags members
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} serializer.MemberView
// @Failure 400 {object} errors.ErrorResponse
// @Router /members/get/{user_id} [get]
func (h *MemberHandler) ListMembers(c echo.Context) error {
	userID, err := parseID(c, "user_id")
	if err != nil {
		return err
	}
	members, err := h.svc.ListMembers(c.Request().Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.Members(members))
}

// UpdateMember godoc
// @Summary Update the supplied fields of a family member
// @Tags members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param request body service.MemberUpdate true "Fields to change"
// @Success 200 {string} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /member/update/{id} [put]
// @Router /member/update/{id} [patch]
func (h *MemberHandler) UpdateMember(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req service.MemberUpdate
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.svc.UpdateMember(c.Request().Context(), id, req); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, "Member has been updated")
}

// DeleteMember godoc
// @Summary Delete a family member with its list items
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {string} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /member/delete/{id} [delete]
func (h *MemberHandler) DeleteMember(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteMember(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, "The family member has been deleted.")
}
