package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"studentportal/internal/model"
	"studentportal/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	svc service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// CreateProject godoc
// @Summary Submit a project request
// @Tags projects
// @Accept json
// @Produce json
// @Param request body model.ProjectInput true "Project data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var in model.ProjectInput
	if err := c.Bind(&in); err != nil {
		return badRequest("invalid request body")
	}
	project, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondDocument(c, http.StatusCreated, project)
}

// ListProjects godoc
// @Summary List projects, newest first
// @Tags projects
// @Produce json
// @Param studentId query string false "Filter by student"
// @Success 200 {array} map[string]interface{}
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	projects, err := h.svc.List(c.Request().Context(), c.QueryParam("studentId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondDocuments(c, projects)
}

// GetProject godoc
// @Summary Get project by id
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	project, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondDocument(c, http.StatusOK, project)
}

// UpdateProject godoc
// @Summary Partially update a project
// @Description Only supplied fields change; deliverables replaces the stored list. An empty body returns {"updated": false}.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body model.ProjectPatch true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	var patch model.ProjectPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest("invalid request body")
	}
	project, updated, err := h.svc.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	if !updated {
		return c.JSON(http.StatusOK, NotUpdatedResponse{Updated: false})
	}
	return respondDocument(c, http.StatusOK, project)
}

// AttachDeliverable godoc
// @Summary Add a file reference to a project's deliverables
// @Description Existing deliverables are kept; adding the same reference twice stores it once.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body model.DeliverableInput true "File reference"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/deliverables [post]
func (h *ProjectHandler) AttachDeliverable(c echo.Context) error {
	var in model.DeliverableInput
	if err := c.Bind(&in); err != nil {
		return badRequest("invalid request body")
	}
	project, err := h.svc.AttachDeliverable(c.Request().Context(), c.Param("id"), in.URL)
	if err != nil {
		return respondError(c, err)
	}
	return respondDocument(c, http.StatusOK, project)
}
