package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

type activityRepository interface {
	FindByID(ctx context.Context, id string) (*models.Activity, error)
	List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error)
	Create(ctx context.Context, activity *models.Activity) error
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id string) error
}

// ActivityService manages program activities.
type ActivityService struct {
	repo      activityRepository
	programs  existenceChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewActivityService constructs the activity service.
func NewActivityService(repo activityRepository, programExists existenceChecker, validate *validator.Validate, logger *zap.Logger) *ActivityService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{repo: repo, programs: programExists, validator: validate, logger: logger}
}

func (s *ActivityService) List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, *models.Pagination, error) {
	filter.ListParams = filter.ListParams.Normalize()
	activities, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activities")
	}
	return activities, paginate(len(activities), filter.Limit, filter.Offset), nil
}

func (s *ActivityService) Get(ctx context.Context, id string) (*models.Activity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "activity")
	}
	return activity, nil
}

func (s *ActivityService) Create(ctx context.Context, req models.CreateActivityRequest) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid activity payload")
	}
	if req.EndTime < req.StartTime {
		return nil, fieldError("endTime", "must not be before startTime")
	}
	if err := requireReference(ctx, s.programs, "programId", "program", req.ProgramID); err != nil {
		return nil, err
	}
	activity := &models.Activity{
		ProgramID:   req.ProgramID,
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, writeError(err, "create", "activity")
	}
	return activity, nil
}

func (s *ActivityService) Update(ctx context.Context, id string, req models.UpdateActivityRequest) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid activity payload")
	}
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "activity")
	}
	if req.ProgramID != nil && *req.ProgramID != activity.ProgramID {
		if err := requireReference(ctx, s.programs, "programId", "program", *req.ProgramID); err != nil {
			return nil, err
		}
		activity.ProgramID = *req.ProgramID
	}
	if req.Name != nil {
		activity.Name = *req.Name
	}
	if req.Description != nil {
		activity.Description = req.Description
	}
	if req.Date != nil {
		activity.Date = *req.Date
	}
	if req.StartTime != nil {
		activity.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		activity.EndTime = *req.EndTime
	}
	// HH:MM compares lexically
	if activity.EndTime < activity.StartTime {
		return nil, fieldError("endTime", "must not be before startTime")
	}
	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, writeError(err, "update", "activity")
	}
	return activity, nil
}

func (s *ActivityService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "activity")
	}
	return nil
}
