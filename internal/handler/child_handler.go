package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/pkg/response"
)

type childService interface {
	List(ctx context.Context, filter models.ChildFilter) ([]models.Child, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Child, error)
	Create(ctx context.Context, req models.CreateChildRequest) (*models.Child, error)
	Update(ctx context.Context, id string, req models.UpdateChildRequest) (*models.Child, error)
	Delete(ctx context.Context, id string) error
}

// ChildHandler exposes child endpoints.
type ChildHandler struct {
	children childService
}

// NewChildHandler constructs ChildHandler.
func NewChildHandler(children childService) *ChildHandler {
	return &ChildHandler{children: children}
}

// List godoc
// @Summary List children
// @Tags Children
// @Produce json
// @Param parentId query string false "Filter by parent"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /children [get]
func (h *ChildHandler) List(c *gin.Context) {
	filter := models.ChildFilter{ListParams: listParams(c)}
	filter.ParentID = strings.TrimSpace(c.Query("parentId"))
	items, pagination, err := h.children.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get child
// @Tags Children
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /children/{id} [get]
func (h *ChildHandler) Get(c *gin.Context) {
	item, err := h.children.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create child
// @Tags Children
// @Accept json
// @Produce json
// @Param payload body models.CreateChildRequest true "Child payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /children [post]
func (h *ChildHandler) Create(c *gin.Context) {
	var req models.CreateChildRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.children.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update child
// @Tags Children
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param payload body models.UpdateChildRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /children/{id} [put]
func (h *ChildHandler) Update(c *gin.Context) {
	var req models.UpdateChildRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.children.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete child
// @Tags Children
// @Param id path string true "ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /children/{id} [delete]
func (h *ChildHandler) Delete(c *gin.Context) {
	if err := h.children.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
