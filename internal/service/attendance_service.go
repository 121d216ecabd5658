package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

type attendanceRepository interface {
	FindByID(ctx context.Context, id string) (*models.Attendance, error)
	List(ctx context.Context, filter models.AttendanceFilter, dayStart, dayEnd time.Time) ([]models.Attendance, error)
	Create(ctx context.Context, record *models.Attendance) error
	Update(ctx context.Context, record *models.Attendance) error
	Delete(ctx context.Context, id string) error
}

// AttendanceService records daily presence of children.
type AttendanceService struct {
	repo      attendanceRepository
	children  existenceChecker
	validator *validator.Validate
	cache     cacheInvalidator
	location  *time.Location
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service. Day filters are resolved in loc.
func NewAttendanceService(repo attendanceRepository, childExists existenceChecker, validate *validator.Validate, cache cacheInvalidator, loc *time.Location, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = NewValidator()
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, children: childExists, validator: validate, cache: cache, location: loc, logger: logger}
}

// List returns attendance for a day and/or a child. At least one filter is required.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, *models.Pagination, error) {
	if filter.Date == nil && filter.ChildID == "" {
		return nil, nil, fieldError("date", "date or childId is required")
	}
	filter.ListParams = filter.ListParams.Normalize()

	var dayStart, dayEnd time.Time
	if filter.Date != nil {
		dayStart, dayEnd = dayBounds(filter.Date.Time, s.location)
	}
	records, err := s.repo.List(ctx, filter, dayStart, dayEnd)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, paginate(len(records), filter.Limit, filter.Offset), nil
}

// Get returns a single attendance record.
func (s *AttendanceService) Get(ctx context.Context, id string) (*models.Attendance, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "attendance")
	}
	return record, nil
}

// Create records attendance for a child.
func (s *AttendanceService) Create(ctx context.Context, req models.CreateAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	if err := requireReference(ctx, s.children, "childId", "child", req.ChildID); err != nil {
		return nil, err
	}
	record := &models.Attendance{
		ChildID: req.ChildID,
		Date:    req.Date,
		Present: *req.Present,
		Notes:   req.Notes,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, writeError(err, "create", "attendance")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return record, nil
}

// Update applies a partial update.
func (s *AttendanceService) Update(ctx context.Context, id string, req models.UpdateAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "attendance")
	}
	if req.ChildID != nil && *req.ChildID != record.ChildID {
		if err := requireReference(ctx, s.children, "childId", "child", *req.ChildID); err != nil {
			return nil, err
		}
		record.ChildID = *req.ChildID
	}
	if req.Date != nil {
		record.Date = *req.Date
	}
	if req.Present != nil {
		record.Present = *req.Present
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, writeError(err, "update", "attendance")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return record, nil
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "attendance")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return nil
}

// dayBounds returns [00:00, next day 00:00) of t's calendar day in loc.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// monthBounds returns [first day 00:00, first day of next month 00:00) for t in loc.
func monthBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}
