package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/pkg/response"
)

type programService interface {
	List(ctx context.Context, filter models.ProgramFilter) ([]models.Program, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Program, error)
	Create(ctx context.Context, req models.CreateProgramRequest) (*models.Program, error)
	Update(ctx context.Context, id string, req models.UpdateProgramRequest) (*models.Program, error)
	Delete(ctx context.Context, id string) error
}

// ProgramHandler exposes program endpoints.
type ProgramHandler struct {
	programs programService
}

// NewProgramHandler constructs ProgramHandler.
func NewProgramHandler(programs programService) *ProgramHandler {
	return &ProgramHandler{programs: programs}
}

// List godoc
// @Summary List programs
// @Tags Programs
// @Produce json
// @Param status query string false "Filter by status (draft, active, complete, cancelled)"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /programs [get]
func (h *ProgramHandler) List(c *gin.Context) {
	filter := models.ProgramFilter{ListParams: listParams(c)}
	filter.Status = models.ProgramStatus(strings.TrimSpace(c.Query("status")))
	items, pagination, err := h.programs.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get program
// @Tags Programs
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /programs/{id} [get]
func (h *ProgramHandler) Get(c *gin.Context) {
	item, err := h.programs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create program
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body models.CreateProgramRequest true "Program payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /programs [post]
func (h *ProgramHandler) Create(c *gin.Context) {
	var req models.CreateProgramRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.programs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update program
// @Tags Programs
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param payload body models.UpdateProgramRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /programs/{id} [put]
func (h *ProgramHandler) Update(c *gin.Context) {
	var req models.UpdateProgramRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.programs.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete program
// @Tags Programs
// @Param id path string true "ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /programs/{id} [delete]
func (h *ProgramHandler) Delete(c *gin.Context) {
	if err := h.programs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
