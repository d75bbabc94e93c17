package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"studentportal/internal/model"
	"studentportal/internal/service"
)

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePayment godoc
// @Summary Submit a payment record
// @Tags payments
// @Accept json
// @Produce json
// @Param request body model.PaymentInput true "Payment data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var in model.PaymentInput
	if err := c.Bind(&in); err != nil {
		return badRequest("invalid request body")
	}
	payment, err := h.paymentService.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondDocument(c, http.StatusCreated, payment)
}

// ListPayments godoc
// @Summary List payments, newest first
// @Tags payments
// @Produce json
// @Param studentId query string false "Filter by student"
// @Success 200 {array} map[string]interface{}
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	payments, err := h.paymentService.List(c.Request().Context(), c.QueryParam("studentId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondDocuments(c, payments)
}

// UpdatePayment godoc
// @Summary Verify or annotate a payment
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body model.PaymentPatch true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /payments/{id} [patch]
func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	var patch model.PaymentPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest("invalid request body")
	}
	payment, updated, err := h.paymentService.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	if !updated {
		return c.JSON(http.StatusOK, NotUpdatedResponse{Updated: false})
	}
	return respondDocument(c, http.StatusOK, payment)
}
