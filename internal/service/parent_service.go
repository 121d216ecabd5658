package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

type parentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Parent, error)
	List(ctx context.Context, filter models.ParentFilter) ([]models.Parent, error)
	Create(ctx context.Context, parent *models.Parent) error
	Update(ctx context.Context, parent *models.Parent) error
	Delete(ctx context.Context, id string) error
}

// ParentService handles parent use-cases.
type ParentService struct {
	repo      parentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewParentService constructs the parent service.
func NewParentService(repo parentRepository, validate *validator.Validate, logger *zap.Logger) *ParentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParentService{repo: repo, validator: validate, logger: logger}
}

// List returns parents ordered by name.
func (s *ParentService) List(ctx context.Context, filter models.ParentFilter) ([]models.Parent, *models.Pagination, error) {
	filter.ListParams = filter.ListParams.Normalize()
	parents, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list parents")
	}
	return parents, paginate(len(parents), filter.Limit, filter.Offset), nil
}

// Get returns a single parent.
func (s *ParentService) Get(ctx context.Context, id string) (*models.Parent, error) {
	parent, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "parent")
	}
	return parent, nil
}

// Create registers a parent.
func (s *ParentService) Create(ctx context.Context, req models.CreateParentRequest) (*models.Parent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid parent payload")
	}
	parent := &models.Parent{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		EmergencyPhone: req.EmergencyPhone,
		Neighborhood:   req.Neighborhood,
		Address:        req.Address,
		Notes:          req.Notes,
	}
	if err := s.repo.Create(ctx, parent); err != nil {
		return nil, writeError(err, "create", "parent")
	}
	return parent, nil
}

// Update applies a partial update.
func (s *ParentService) Update(ctx context.Context, id string, req models.UpdateParentRequest) (*models.Parent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid parent payload")
	}
	parent, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "parent")
	}
	if req.Name != nil {
		parent.Name = *req.Name
	}
	if req.Email != nil {
		parent.Email = *req.Email
	}
	if req.Phone != nil {
		parent.Phone = *req.Phone
	}
	if req.EmergencyPhone != nil {
		parent.EmergencyPhone = req.EmergencyPhone
	}
	if req.Neighborhood != nil {
		parent.Neighborhood = req.Neighborhood
	}
	if req.Address != nil {
		parent.Address = req.Address
	}
	if req.Notes != nil {
		parent.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, parent); err != nil {
		return nil, writeError(err, "update", "parent")
	}
	return parent, nil
}

// Delete removes a parent. Parents with children or communications cannot be removed.
func (s *ParentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "parent")
	}
	return nil
}
