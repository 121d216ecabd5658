package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

type childRepository interface {
	FindByID(ctx context.Context, id string) (*models.Child, error)
	List(ctx context.Context, filter models.ChildFilter) ([]models.Child, error)
	Create(ctx context.Context, child *models.Child) error
	Update(ctx context.Context, child *models.Child) error
	Delete(ctx context.Context, id string) error
}

// ChildService handles child registration use-cases.
type ChildService struct {
	repo      childRepository
	parents   existenceChecker
	validator *validator.Validate
	cache     cacheInvalidator
	logger    *zap.Logger
}

// NewChildService constructs the child service. parentExists guards the parentId reference.
func NewChildService(repo childRepository, parentExists existenceChecker, validate *validator.Validate, cache cacheInvalidator, logger *zap.Logger) *ChildService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChildService{repo: repo, parents: parentExists, validator: validate, cache: cache, logger: logger}
}

// List returns children, optionally for one parent.
func (s *ChildService) List(ctx context.Context, filter models.ChildFilter) ([]models.Child, *models.Pagination, error) {
	filter.ListParams = filter.ListParams.Normalize()
	children, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list children")
	}
	return children, paginate(len(children), filter.Limit, filter.Offset), nil
}

// Get returns a single child.
func (s *ChildService) Get(ctx context.Context, id string) (*models.Child, error) {
	child, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "child")
	}
	return child, nil
}

// Create registers a child under an existing parent.
func (s *ChildService) Create(ctx context.Context, req models.CreateChildRequest) (*models.Child, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid child payload")
	}
	if err := requireReference(ctx, s.parents, "parentId", "parent", req.ParentID); err != nil {
		return nil, err
	}
	child := &models.Child{
		Name:         req.Name,
		BirthDate:    req.BirthDate,
		Age:          req.Age,
		Allergies:    req.Allergies,
		MedicalNotes: req.MedicalNotes,
		Interests:    req.Interests,
		ParentID:     req.ParentID,
	}
	if err := s.repo.Create(ctx, child); err != nil {
		return nil, writeError(err, "create", "child")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return child, nil
}

// Update applies a partial update, re-checking the parent when it changes.
func (s *ChildService) Update(ctx context.Context, id string, req models.UpdateChildRequest) (*models.Child, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid child payload")
	}
	child, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "child")
	}
	if req.ParentID != nil && *req.ParentID != child.ParentID {
		if err := requireReference(ctx, s.parents, "parentId", "parent", *req.ParentID); err != nil {
			return nil, err
		}
		child.ParentID = *req.ParentID
	}
	if req.Name != nil {
		child.Name = *req.Name
	}
	if req.BirthDate != nil {
		child.BirthDate = *req.BirthDate
	}
	if req.Age != nil {
		child.Age = req.Age
	}
	if req.Allergies != nil {
		child.Allergies = req.Allergies
	}
	if req.MedicalNotes != nil {
		child.MedicalNotes = req.MedicalNotes
	}
	if req.Interests != nil {
		child.Interests = req.Interests
	}
	if err := s.repo.Update(ctx, child); err != nil {
		return nil, writeError(err, "update", "child")
	}
	return child, nil
}

// Delete removes a child.
func (s *ChildService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "child")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return nil
}
