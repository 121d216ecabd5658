package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

type enrollmentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id string) error
}

// EnrollmentService manages enrollments of children into programs.
type EnrollmentService struct {
	repo      enrollmentRepository
	programs  existenceChecker
	children  existenceChecker
	validator *validator.Validate
	cache     cacheInvalidator
	logger    *zap.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo enrollmentRepository, programExists, childExists existenceChecker, validate *validator.Validate, cache cacheInvalidator, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, programs: programExists, children: childExists, validator: validate, cache: cache, logger: logger}
}

// List returns enrollments filtered by program and/or child.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, *models.Pagination, error) {
	filter.ListParams = filter.ListParams.Normalize()
	enrollments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return enrollments, paginate(len(enrollments), filter.Limit, filter.Offset), nil
}

// Get returns a single enrollment.
func (s *EnrollmentService) Get(ctx context.Context, id string) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "enrollment")
	}
	return enrollment, nil
}

// Create enrolls a child into a program. Status defaults to pending.
func (s *EnrollmentService) Create(ctx context.Context, req models.CreateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid enrollment payload")
	}
	if err := requireReference(ctx, s.programs, "programId", "program", req.ProgramID); err != nil {
		return nil, err
	}
	if err := requireReference(ctx, s.children, "childId", "child", req.ChildID); err != nil {
		return nil, err
	}
	enrollment := &models.Enrollment{
		ProgramID: req.ProgramID,
		ChildID:   req.ChildID,
		Status:    req.Status,
		Amount:    req.Amount.Round(2),
		Discount:  req.Discount.Round(2),
		Notes:     req.Notes,
	}
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentStatusPending
	}
	if req.EnrollmentDate != nil {
		enrollment.EnrollmentDate = *req.EnrollmentDate
	} else {
		enrollment.EnrollmentDate = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, writeError(err, "create", "enrollment")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return enrollment, nil
}

// Update applies a partial update, re-checking changed references.
func (s *EnrollmentService) Update(ctx context.Context, id string, req models.UpdateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid enrollment payload")
	}
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "enrollment")
	}
	if req.ProgramID != nil && *req.ProgramID != enrollment.ProgramID {
		if err := requireReference(ctx, s.programs, "programId", "program", *req.ProgramID); err != nil {
			return nil, err
		}
		enrollment.ProgramID = *req.ProgramID
	}
	if req.ChildID != nil && *req.ChildID != enrollment.ChildID {
		if err := requireReference(ctx, s.children, "childId", "child", *req.ChildID); err != nil {
			return nil, err
		}
		enrollment.ChildID = *req.ChildID
	}
	if req.Status != nil {
		enrollment.Status = *req.Status
	}
	if req.Amount != nil {
		enrollment.Amount = req.Amount.Round(2)
	}
	if req.Discount != nil {
		enrollment.Discount = req.Discount.Round(2)
	}
	if req.Notes != nil {
		enrollment.Notes = req.Notes
	}
	if req.EnrollmentDate != nil {
		enrollment.EnrollmentDate = *req.EnrollmentDate
	}
	if err := s.repo.Update(ctx, enrollment); err != nil {
		return nil, writeError(err, "update", "enrollment")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return enrollment, nil
}

// Delete removes an enrollment.
func (s *EnrollmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "enrollment")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return nil
}
