package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

type paymentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id string) error
}

// PaymentService records payments against enrollments.
type PaymentService struct {
	repo        paymentRepository
	enrollments existenceChecker
	validator   *validator.Validate
	cache       cacheInvalidator
	logger      *zap.Logger
}

// NewPaymentService constructs the payment service.
func NewPaymentService(repo paymentRepository, enrollmentExists existenceChecker, validate *validator.Validate, cache cacheInvalidator, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, enrollments: enrollmentExists, validator: validate, cache: cache, logger: logger}
}

// List returns payments, optionally for one enrollment.
func (s *PaymentService) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, *models.Pagination, error) {
	filter.ListParams = filter.ListParams.Normalize()
	payments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	return payments, paginate(len(payments), filter.Limit, filter.Offset), nil
}

// Get returns a single payment.
func (s *PaymentService) Get(ctx context.Context, id string) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "payment")
	}
	return payment, nil
}

// Create records a payment. Status defaults to pending and the date to now.
func (s *PaymentService) Create(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error) {
	req.Amount = req.Amount.Round(2)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid payment payload")
	}
	if err := requireReference(ctx, s.enrollments, "enrollmentId", "enrollment", req.EnrollmentID); err != nil {
		return nil, err
	}
	payment := &models.Payment{
		EnrollmentID: req.EnrollmentID,
		Amount:       req.Amount,
		Method:       req.Method,
		Status:       req.Status,
		Notes:        req.Notes,
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	} else {
		payment.PaymentDate = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, writeError(err, "create", "payment")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return payment, nil
}

// Update applies a partial update.
func (s *PaymentService) Update(ctx context.Context, id string, req models.UpdatePaymentRequest) (*models.Payment, error) {
	if req.Amount != nil {
		rounded := req.Amount.Round(2)
		req.Amount = &rounded
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid payment payload")
	}
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "payment")
	}
	if req.EnrollmentID != nil && *req.EnrollmentID != payment.EnrollmentID {
		if err := requireReference(ctx, s.enrollments, "enrollmentId", "enrollment", *req.EnrollmentID); err != nil {
			return nil, err
		}
		payment.EnrollmentID = *req.EnrollmentID
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}
	if req.Method != nil {
		payment.Method = *req.Method
	}
	if req.Status != nil {
		payment.Status = *req.Status
	}
	if req.Notes != nil {
		payment.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, writeError(err, "update", "payment")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return payment, nil
}

// Delete removes a payment.
func (s *PaymentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "payment")
	}
	invalidateDashboard(ctx, s.cache, s.logger)
	return nil
}
