package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/pkg/config"
	"github.com/noah-isme/nemi-admin-api/pkg/jobs"
)

const dispatchJobType = "communication.dispatch"

type dispatchPublisher interface {
	Publish(ctx context.Context, messageID string, payload interface{}) error
}

type dispatchParentReader interface {
	FindByID(ctx context.Context, id string) (*models.Parent, error)
}

type dispatchStatusWriter interface {
	UpdateStatus(ctx context.Context, id string, status models.CommunicationStatus) error
}

// DispatchService delivers stored communications through the background queue.
type DispatchService struct {
	queue     *jobs.Queue
	parents   dispatchParentReader
	statuses  dispatchStatusWriter
	publisher dispatchPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewDispatchService wires the dispatch worker pool. A nil publisher only logs deliveries.
func NewDispatchService(parents dispatchParentReader, statuses dispatchStatusWriter, publisher dispatchPublisher, cfg config.DispatchConfig, logger *zap.Logger) *DispatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &DispatchService{
		parents:   parents,
		statuses:  statuses,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
	svc.queue = jobs.NewQueue("communications", svc.handle, jobs.QueueConfig{
		Workers:     cfg.Workers,
		MaxRetries:  cfg.Retries,
		RetryDelay:  cfg.RetryDelay,
		OnExhausted: svc.markFailed,
		Logger:      logger,
	})
	return svc
}

// Start launches the workers.
func (s *DispatchService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *DispatchService) Stop() {
	s.queue.Stop()
}

// Dispatch queues a communication for delivery.
func (s *DispatchService) Dispatch(_ context.Context, communication models.Communication) error {
	return s.queue.Enqueue(dispatchJob(communication))
}

func dispatchJob(communication models.Communication) jobs.Job {
	return jobs.Job{ID: communication.ID, Type: dispatchJobType, Payload: communication}
}

func (s *DispatchService) handle(ctx context.Context, job jobs.Job) error {
	communication, ok := job.Payload.(models.Communication)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	parent, err := s.parents.FindByID(ctx, communication.ParentID)
	if err != nil {
		return fmt.Errorf("load parent %s: %w", communication.ParentID, err)
	}

	msg := models.CommunicationDispatchMessage{
		CommunicationID: communication.ID,
		ParentID:        parent.ID,
		ParentName:      parent.Name,
		Email:           parent.Email,
		Phone:           parent.Phone,
		Type:            communication.Type,
		Subject:         communication.Subject,
		Content:         communication.Content,
		QueuedAt:        s.now().UTC(),
	}

	if s.publisher == nil {
		s.logger.Info("communication dispatched",
			zap.String("communication_id", msg.CommunicationID),
			zap.String("type", string(msg.Type)),
			zap.String("parent_id", msg.ParentID),
		)
		return nil
	}
	return s.publisher.Publish(ctx, msg.CommunicationID, msg)
}

func (s *DispatchService) markFailed(ctx context.Context, job jobs.Job, cause error) {
	if err := s.statuses.UpdateStatus(ctx, job.ID, models.CommunicationStatusFailed); err != nil {
		s.logger.Error("failed to mark communication as failed",
			zap.String("communication_id", job.ID),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
	}
}
