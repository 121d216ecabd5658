package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/pkg/response"
)

type communicationService interface {
	List(ctx context.Context, filter models.CommunicationFilter) ([]models.Communication, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Communication, error)
	Create(ctx context.Context, req models.CreateCommunicationRequest) (*models.Communication, error)
	Update(ctx context.Context, id string, req models.UpdateCommunicationRequest) (*models.Communication, error)
	Delete(ctx context.Context, id string) error
}

// CommunicationHandler exposes communication endpoints.
type CommunicationHandler struct {
	communications communicationService
}

// NewCommunicationHandler constructs CommunicationHandler.
func NewCommunicationHandler(communications communicationService) *CommunicationHandler {
	return &CommunicationHandler{communications: communications}
}

// List godoc
// @Summary List communications
// @Tags Communications
// @Produce json
// @Param parentId query string false "Filter by parent"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /communications [get]
func (h *CommunicationHandler) List(c *gin.Context) {
	filter := models.CommunicationFilter{ListParams: listParams(c)}
	filter.ParentID = strings.TrimSpace(c.Query("parentId"))
	items, pagination, err := h.communications.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get communication
// @Tags Communications
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /communications/{id} [get]
func (h *CommunicationHandler) Get(c *gin.Context) {
	item, err := h.communications.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create communication
// @Tags Communications
// @Accept json
// @Produce json
// @Param payload body models.CreateCommunicationRequest true "Communication payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /communications [post]
func (h *CommunicationHandler) Create(c *gin.Context) {
	var req models.CreateCommunicationRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.communications.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update communication
// @Tags Communications
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param payload body models.UpdateCommunicationRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /communications/{id} [put]
func (h *CommunicationHandler) Update(c *gin.Context) {
	var req models.UpdateCommunicationRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.communications.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete communication
// @Tags Communications
// @Param id path string true "ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /communications/{id} [delete]
func (h *CommunicationHandler) Delete(c *gin.Context) {
	if err := h.communications.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
