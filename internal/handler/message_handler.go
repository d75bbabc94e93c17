package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"studentportal/internal/model"
	"studentportal/internal/service"
)

// MessageHandler handles message endpoints.
type MessageHandler struct {
	svc service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// SendMessage godoc
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body model.MessageInput true "Message"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} errors.ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var in model.MessageInput
	if err := c.Bind(&in); err != nil {
		return badRequest("invalid request body")
	}
	msg, err := h.svc.Send(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondDocument(c, http.StatusCreated, msg)
}

// ListMessages godoc
// @Summary List a user's sent and received messages, newest first
// @Tags messages
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {array} map[string]interface{}
// @Failure 422 {object} errors.ErrorResponse
// @Router /messages [get]
func (h *MessageHandler) ListMessages(c echo.Context) error {
	msgs, err := h.svc.List(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondDocuments(c, msgs)
}
