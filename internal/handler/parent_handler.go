package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/pkg/response"
)

type parentService interface {
	List(ctx context.Context, filter models.ParentFilter) ([]models.Parent, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Parent, error)
	Create(ctx context.Context, req models.CreateParentRequest) (*models.Parent, error)
	Update(ctx context.Context, id string, req models.UpdateParentRequest) (*models.Parent, error)
	Delete(ctx context.Context, id string) error
}

// ParentHandler exposes parent endpoints.
type ParentHandler struct {
	parents parentService
}

// NewParentHandler constructs ParentHandler.
func NewParentHandler(parents parentService) *ParentHandler {
	return &ParentHandler{parents: parents}
}

// List godoc
// @Summary List parents
// @Tags Parents
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /parents [get]
func (h *ParentHandler) List(c *gin.Context) {
	filter := models.ParentFilter{ListParams: listParams(c)}
	items, pagination, err := h.parents.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get parent
// @Tags Parents
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /parents/{id} [get]
func (h *ParentHandler) Get(c *gin.Context) {
	item, err := h.parents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create parent
// @Tags Parents
// @Accept json
// @Produce json
// @Param payload body models.CreateParentRequest true "Parent payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /parents [post]
func (h *ParentHandler) Create(c *gin.Context) {
	var req models.CreateParentRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.parents.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update parent
// @Tags Parents
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param payload body models.UpdateParentRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /parents/{id} [put]
func (h *ParentHandler) Update(c *gin.Context) {
	var req models.UpdateParentRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.parents.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete parent
// @Tags Parents
// @Param id path string true "ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /parents/{id} [delete]
func (h *ParentHandler) Delete(c *gin.Context) {
	if err := h.parents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
