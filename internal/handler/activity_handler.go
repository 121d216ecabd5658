package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/pkg/response"
)

type activityService interface {
	List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Activity, error)
	Create(ctx context.Context, req models.CreateActivityRequest) (*models.Activity, error)
	Update(ctx context.Context, id string, req models.UpdateActivityRequest) (*models.Activity, error)
	Delete(ctx context.Context, id string) error
}

// ActivityHandler exposes activity endpoints.
type ActivityHandler struct {
	activities activityService
}

// NewActivityHandler constructs ActivityHandler.
func NewActivityHandler(activities activityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// List godoc
// @Summary List activities
// @Tags Activities
// @Produce json
// @Param programId query string false "Filter by program"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	filter := models.ActivityFilter{ListParams: listParams(c)}
	filter.ProgramID = strings.TrimSpace(c.Query("programId"))
	items, pagination, err := h.activities.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get activity
// @Tags Activities
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /activities/{id} [get]
func (h *ActivityHandler) Get(c *gin.Context) {
	item, err := h.activities.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param payload body models.CreateActivityRequest true "Activity payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	var req models.CreateActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.activities.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param payload body models.UpdateActivityRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /activities/{id} [put]
func (h *ActivityHandler) Update(c *gin.Context) {
	var req models.UpdateActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.activities.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete activity
// @Tags Activities
// @Param id path string true "ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.activities.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
