package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/pkg/response"
)

type inventoryService interface {
	List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryItem, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.InventoryItem, error)
	Create(ctx context.Context, req models.CreateInventoryRequest) (*models.InventoryItem, error)
	Update(ctx context.Context, id string, req models.UpdateInventoryRequest) (*models.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}

// InventoryHandler exposes inventory item endpoints.
type InventoryHandler struct {
	items inventoryService
}

// NewInventoryHandler constructs InventoryHandler.
func NewInventoryHandler(items inventoryService) *InventoryHandler {
	return &InventoryHandler{items: items}
}

// List godoc
// @Summary List inventory
// @Tags Inventory
// @Produce json
// @Param category query string false "Filter by category"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	filter := models.InventoryFilter{ListParams: listParams(c)}
	filter.Category = strings.TrimSpace(c.Query("category"))
	items, pagination, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get inventory item
// @Tags Inventory
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /inventory/{id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.items.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param payload body models.CreateInventoryRequest true "Inventory payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req models.CreateInventoryRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.items.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param payload body models.UpdateInventoryRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	var req models.UpdateInventoryRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.items.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete inventory item
// @Tags Inventory
// @Param id path string true "ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.items.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
