package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

type communicationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Communication, error)
	List(ctx context.Context, filter models.CommunicationFilter) ([]models.Communication, error)
	Create(ctx context.Context, communication *models.Communication) error
	Update(ctx context.Context, communication *models.Communication) error
	UpdateStatus(ctx context.Context, id string, status models.CommunicationStatus) error
	Delete(ctx context.Context, id string) error
}

type communicationDispatcher interface {
	Dispatch(ctx context.Context, communication models.Communication) error
}

// CommunicationService stores messages to parents and hands them to the dispatcher.
type CommunicationService struct {
	repo       communicationRepository
	parents    existenceChecker
	dispatcher communicationDispatcher
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCommunicationService constructs the communication service. dispatcher may be nil.
func NewCommunicationService(repo communicationRepository, parentExists existenceChecker, dispatcher communicationDispatcher, validate *validator.Validate, logger *zap.Logger) *CommunicationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommunicationService{repo: repo, parents: parentExists, dispatcher: dispatcher, validator: validate, logger: logger}
}

func (s *CommunicationService) List(ctx context.Context, filter models.CommunicationFilter) ([]models.Communication, *models.Pagination, error) {
	filter.ListParams = filter.ListParams.Normalize()
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list communications")
	}
	return items, paginate(len(items), filter.Limit, filter.Offset), nil
}

func (s *CommunicationService) Get(ctx context.Context, id string) (*models.Communication, error) {
	communication, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "communication")
	}
	return communication, nil
}

// Create stores the communication as sent and queues it for delivery.
// A rejected enqueue downgrades the status to failed without failing the request.
func (s *CommunicationService) Create(ctx context.Context, req models.CreateCommunicationRequest) (*models.Communication, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid communication payload")
	}
	if err := requireReference(ctx, s.parents, "parentId", "parent", req.ParentID); err != nil {
		return nil, err
	}
	communication := &models.Communication{
		ParentID: req.ParentID,
		Type:     req.Type,
		Subject:  req.Subject,
		Content:  req.Content,
		Status:   req.Status,
	}
	if communication.Status == "" {
		communication.Status = models.CommunicationStatusSent
	}
	if req.Date != nil {
		communication.Date = *req.Date
	}
	if err := s.repo.Create(ctx, communication); err != nil {
		return nil, writeError(err, "create", "communication")
	}

	if s.dispatcher == nil || communication.Status != models.CommunicationStatusSent {
		return communication, nil
	}
	if err := s.dispatcher.Dispatch(ctx, *communication); err != nil {
		s.logger.Warn("communication dispatch rejected", zap.String("communication_id", communication.ID), zap.Error(err))
		if err := s.repo.UpdateStatus(ctx, communication.ID, models.CommunicationStatusFailed); err != nil {
			s.logger.Error("failed to mark communication as failed", zap.String("communication_id", communication.ID), zap.Error(err))
			return communication, nil
		}
		communication.Status = models.CommunicationStatusFailed
		communication.UpdatedAt = time.Now().UTC()
	}
	return communication, nil
}

func (s *CommunicationService) Update(ctx context.Context, id string, req models.UpdateCommunicationRequest) (*models.Communication, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid communication payload")
	}
	communication, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "communication")
	}
	if req.ParentID != nil && *req.ParentID != communication.ParentID {
		if err := requireReference(ctx, s.parents, "parentId", "parent", *req.ParentID); err != nil {
			return nil, err
		}
		communication.ParentID = *req.ParentID
	}
	if req.Type != nil {
		communication.Type = *req.Type
	}
	if req.Subject != nil {
		communication.Subject = *req.Subject
	}
	if req.Content != nil {
		communication.Content = *req.Content
	}
	if req.Date != nil {
		communication.Date = *req.Date
	}
	if req.Status != nil {
		communication.Status = *req.Status
	}
	if err := s.repo.Update(ctx, communication); err != nil {
		return nil, writeError(err, "update", "communication")
	}
	return communication, nil
}

func (s *CommunicationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "communication")
	}
	return nil
}
