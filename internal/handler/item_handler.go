package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hometasks/internal/serializer"
	"hometasks/internal/service"
)

// ItemHandler handles list item endpoints.
type ItemHandler struct {
	svc service.ItemService
}

// NewItemHandler creates a new list item handler.
func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// CreateItemRequest represents a new list item.
type CreateItemRequest struct {
	Text        string `json:"text" validate:"required"`
	IsCompleted *bool  `json:"is_completed"`
	ListType    string `json:"list_type" validate:"required"`
	MemberID    uint   `json:"member_id" validate:"required"`
}

// AddItem godoc
// @Summary Add a list item to a family member
// @Tags items
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Item data"
// @Success 201 {object} serializer.ItemView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /item/add [post]
func (h *ItemHandler) AddItem(c echo.Context) error {
	var req CreateItemRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in := service.CreateItemInput{
		Text:     req.Text,
		ListType: req.ListType,
		MemberID: req.MemberID,
	}
	if req.IsCompleted != nil {
		in.IsCompleted = *req.IsCompleted
	}

	item, err := h.svc.AddItem(c.Request().Context(), in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, serializer.Item(*item))
}

// ListItems godoc
// @Summary List the items of a family member
// @Tags items
// @Produce json
// @Param member_id path int true "Member ID"
// @Success 200 {array} serializer.ItemView
// @Failure 400 {object} errors.ErrorResponse
// @Router /item/get/{member_id} [get]
func (h *ItemHandler) ListItems(c echo.Context) error {
	memberID, err := parseID(c, "member_id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListItems(c.Request().Context(), memberID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.Items(items))
}

// UpdateItem godoc
// @Summary Update the supplied fields of a list item
// @Tags items
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body service.ItemUpdate true "Fields to change"
// @Success 200 {string} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /item/update/{id} [put]
// @Router /item/update/{id} [patch]
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req service.ItemUpdate
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.svc.UpdateItem(c.Request().Context(), id, req); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, "List item has been updated")
}

// DeleteItem godoc
// @Summary Delete a list item
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {string} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /item/delete/{id} [delete]
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteItem(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, "The list item has been deleted.")
}
