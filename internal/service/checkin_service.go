package service

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
	"github.com/noah-isme/nemi-admin-api/pkg/signing"
)

const checkinQRSize = 256

type checkinAttendanceRepository interface {
	FindForChildBetween(ctx context.Context, childID string, from, to time.Time) (*models.Attendance, error)
	Create(ctx context.Context, record *models.Attendance) error
	Update(ctx context.Context, record *models.Attendance) error
}

// CheckinConfig configures QR check-in links.
type CheckinConfig struct {
	BaseURL  string
	Secret   string
	Location *time.Location
}

// CheckinService issues daily QR codes per child and records scans as attendance.
type CheckinService struct {
	attendance checkinAttendanceRepository
	children   existenceChecker
	signer     *signing.DaySigner
	validator  *validator.Validate
	cache      cacheInvalidator
	logger     *zap.Logger
	baseURL    string
	location   *time.Location
	now        func() time.Time
}

// NewCheckinService constructs the check-in service.
func NewCheckinService(attendance checkinAttendanceRepository, childExists existenceChecker, validate *validator.Validate, cache cacheInvalidator, logger *zap.Logger, cfg CheckinConfig) *CheckinService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &CheckinService{
		attendance: attendance,
		children:   childExists,
		signer:     signing.NewDaySigner(cfg.Secret),
		validator:  validate,
		cache:      cache,
		logger:     logger,
		baseURL:    cfg.BaseURL,
		location:   cfg.Location,
		now:        time.Now,
	}
}

// Link returns today's check-in URL for the child.
func (s *CheckinService) Link(ctx context.Context, childID string) (string, error) {
	ok, err := s.children(ctx, childID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify child")
	}
	if !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "child not found")
	}
	token, err := s.signer.Sign(childID, s.now().In(s.location))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign check-in token")
	}
	query := url.Values{}
	query.Set("child", childID)
	query.Set("token", token)
	return s.baseURL + "/checkin?" + query.Encode(), nil
}

// QRCode renders today's check-in link as a PNG.
func (s *CheckinService) QRCode(ctx context.Context, childID string) ([]byte, error) {
	link, err := s.Link(ctx, childID)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(link, qrcode.Medium, checkinQRSize)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render QR code")
	}
	return png, nil
}

// Checkin verifies a scanned token and marks the child present today.
// A second scan on the same day updates the existing row.
func (s *CheckinService) Checkin(ctx context.Context, req models.CheckinRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid check-in payload")
	}
	now := s.now().In(s.location)
	if err := s.signer.Verify(req.ChildID, req.Token, now); err != nil {
		if errors.Is(err, signing.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "check-in token expired")
		}
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid check-in token")
	}
	if err := requireReference(ctx, s.children, "childId", "child", req.ChildID); err != nil {
		return nil, err
	}

	from, to := dayBounds(now, s.location)
	record, err := s.attendance.FindForChildBetween(ctx, req.ChildID, from, to)
	switch {
	case err == nil:
		record.Present = true
		if err := s.attendance.Update(ctx, record); err != nil {
			return nil, writeError(err, "update", "attendance")
		}
	case errors.Is(err, sql.ErrNoRows):
		record = &models.Attendance{ChildID: req.ChildID, Date: from, Present: true}
		if err := s.attendance.Create(ctx, record); err != nil {
			return nil, writeError(err, "create", "attendance")
		}
	default:
		return nil, loadError(err, "attendance")
	}

	invalidateDashboard(ctx, s.cache, s.logger)
	s.logger.Info("child checked in", zap.String("child_id", req.ChildID), zap.String("attendance_id", record.ID))
	return record, nil
}
