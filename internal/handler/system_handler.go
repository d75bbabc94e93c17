package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"studentportal/internal/service"
)

// SystemHandler serves the banner and store diagnostics.
type SystemHandler struct {
	diagnostics service.DiagnosticsService
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(diagnostics service.DiagnosticsService) *SystemHandler {
	return &SystemHandler{diagnostics: diagnostics}
}

// Root godoc
// @Summary Service banner
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *SystemHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "A&V TechSolutions Backend Running"})
}

// Diagnostics godoc
// @Summary Report database and cache status
// @Description Never fails; connectivity problems are reported in the body.
// @Tags system
// @Produce json
// @Success 200 {object} service.Report
// @Router /test [get]
func (h *SystemHandler) Diagnostics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.diagnostics.Report(c.Request().Context()))
}
