package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

type programRepository interface {
	FindByID(ctx context.Context, id string) (*models.Program, error)
	List(ctx context.Context, filter models.ProgramFilter) ([]models.Program, error)
	Create(ctx context.Context, program *models.Program) error
	Update(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id string) error
}

// ProgramService handles program use-cases.
type ProgramService struct {
	repo      programRepository
	validator *validator.Validate
	cache     cacheInvalidator
	logger    *zap.Logger
}

// NewProgramService constructs the program service.
func NewProgramService(repo programRepository, validate *validator.Validate, cache cacheInvalidator, logger *zap.Logger) *ProgramService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{repo: repo, validator: validate, cache: cache, logger: logger}
}

// List returns programs and pagination metadata.
func (s *ProgramService) List(ctx context.Context, filter models.ProgramFilter) ([]models.Program, *models.Pagination, error) {
	filter.ListParams = filter.ListParams.Normalize()
	if filter.Status != "" {
		if err := s.validator.Var(string(filter.Status), "oneof=draft active complete cancelled"); err != nil {
			return nil, nil, fieldError("status", "must be one of: draft active complete cancelled")
		}
	}
	programs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list programs")
	}
	return programs, paginate(len(programs), filter.Limit, filter.Offset), nil
}

// Get returns a single program.
func (s *ProgramService) Get(ctx context.Context, id string) (*models.Program, error) {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "program")
	}
	return program, nil
}

// Create registers a new program. Status defaults to draft.
func (s *ProgramService) Create(ctx context.Context, req models.CreateProgramRequest) (*models.Program, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid program payload")
	}
	program := &models.Program{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Capacity:    req.Capacity,
		Price:       req.Price.Round(2),
		Status:      req.Status,
	}
	if program.Status == "" {
		program.Status = models.ProgramStatusDraft
	}
	if err := s.repo.Create(ctx, program); err != nil {
		return nil, writeError(err, "create", "program")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return program, nil
}

// Update applies a partial update.
func (s *ProgramService) Update(ctx context.Context, id string, req models.UpdateProgramRequest) (*models.Program, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid program payload")
	}
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "program")
	}
	if req.Name != nil {
		program.Name = *req.Name
	}
	if req.Description != nil {
		program.Description = req.Description
	}
	if req.StartDate != nil {
		program.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		program.EndDate = *req.EndDate
	}
	if req.Capacity != nil {
		program.Capacity = *req.Capacity
	}
	if req.Price != nil {
		program.Price = req.Price.Round(2)
	}
	if req.Status != nil {
		program.Status = *req.Status
	}
	if program.EndDate.Before(program.StartDate.Time) {
		return nil, fieldError("endDate", "must not be before startDate")
	}
	if err := s.repo.Update(ctx, program); err != nil {
		return nil, writeError(err, "update", "program")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return program, nil
}

// Delete removes a program.
func (s *ProgramService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "program")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return nil
}
