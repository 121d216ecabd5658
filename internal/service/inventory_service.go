package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

type inventoryRepository interface {
	FindByID(ctx context.Context, id string) (*models.InventoryItem, error)
	List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id string) error
}

// InventoryService manages stocked supplies.
type InventoryService struct {
	repo      inventoryRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInventoryService constructs the inventory service.
func NewInventoryService(repo inventoryRepository, validate *validator.Validate, logger *zap.Logger) *InventoryService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{repo: repo, validator: validate, logger: logger}
}

func (s *InventoryService) List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryItem, *models.Pagination, error) {
	filter.ListParams = filter.ListParams.Normalize()
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inventory")
	}
	return items, paginate(len(items), filter.Limit, filter.Offset), nil
}

func (s *InventoryService) Get(ctx context.Context, id string) (*models.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "inventory item")
	}
	return item, nil
}

func (s *InventoryService) Create(ctx context.Context, req models.CreateInventoryRequest) (*models.InventoryItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid inventory payload")
	}
	item := &models.InventoryItem{
		Name:     req.Name,
		Quantity: *req.Quantity,
		Category: req.Category,
		Notes:    req.Notes,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, writeError(err, "create", "inventory item")
	}
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, id string, req models.UpdateInventoryRequest) (*models.InventoryItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid inventory payload")
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "inventory item")
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Category != nil {
		item.Category = req.Category
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, writeError(err, "update", "inventory item")
	}
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "inventory item")
	}
	return nil
}
