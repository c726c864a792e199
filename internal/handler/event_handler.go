package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hometasks/internal/serializer"
	"hometasks/internal/service"
)

// EventHandler handles calendar event endpoints.
type EventHandler struct {
	svc service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// CreateEventRequest represents a new calendar event.
type CreateEventRequest struct {
	Title  string `json:"title" validate:"required"`
	Start  string `json:"start" validate:"required"`
	End    string `json:"end" validate:"required"`
	UserID uint   `json:"user_id" validate:"required"`
}

// AddEvent godoc
// @Summary Add a calendar event to a user
// @Tags events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event data"
// @Success 201 {object} serializer.EventView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /event/add [post]
func (h *EventHandler) AddEvent(c echo.Context) error {
	var req CreateEventRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	event, err := h.svc.AddEvent(c.Request().Context(), service.CreateEventInput{
		Title:  req.Title,
		Start:  req.Start,
		End:    req.End,
		UserID: req.UserID,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, serializer.Event(*event))
}

// ListEvents godoc
// @Summary List the events of a user
// @Tags events
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} serializer.EventView
// @Failure 400 {object} errors.ErrorResponse
// @Router /event/get/{user_id} [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	userID, err := parseID(c, "user_id")
	if err != nil {
		return err
	}
	events, err := h.svc.ListEvents(c.Request().Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.Events(events))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {string} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /event/delete/{id} [delete]
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteEvent(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, "The event has been deleted.")
}
