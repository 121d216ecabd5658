package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/pkg/config"
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []models.CommunicationDispatchMessage
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, payload.(models.CommunicationDispatchMessage))
	return nil
}

func (p *recordingPublisher) published() []models.CommunicationDispatchMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.CommunicationDispatchMessage(nil), p.messages...)
}

var testDispatchConfig = config.DispatchConfig{Workers: 1, Retries: 1, RetryDelay: 5 * time.Millisecond}

func TestDispatchPublishesParentContact(t *testing.T) {
	parents := &fakeParentRepo{items: map[string]*models.Parent{
		parentID1: {ID: parentID1, Name: "Ana", Email: "ana@nemi.mx", Phone: "555-0101"},
	}}
	publisher := &recordingPublisher{}
	svc := NewDispatchService(parents, newFakeCommunicationRepo(), publisher, testDispatchConfig, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	err := svc.Dispatch(context.Background(), models.Communication{
		ID:       "c1",
		ParentID: parentID1,
		Type:     models.CommunicationTypeEmail,
		Subject:  "Recordatorio",
		Content:  "Mañana no hay clases",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(publisher.published()) == 1 }, time.Second, 5*time.Millisecond)
	msg := publisher.published()[0]
	assert.Equal(t, "c1", msg.CommunicationID)
	assert.Equal(t, "ana@nemi.mx", msg.Email)
	assert.Equal(t, "Ana", msg.ParentName)
	assert.Equal(t, models.CommunicationTypeEmail, msg.Type)
}

func TestDispatchMarksFailedAfterRetries(t *testing.T) {
	parents := &fakeParentRepo{items: map[string]*models.Parent{parentID1: {ID: parentID1}}}
	statuses := newFakeCommunicationRepo()
	publisher := &recordingPublisher{err: errors.New("broker down")}
	svc := NewDispatchService(parents, statuses, publisher, testDispatchConfig, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	require.NoError(t, svc.Dispatch(context.Background(), models.Communication{ID: "c2", ParentID: parentID1}))

	require.Eventually(t, func() bool {
		return statuses.status("c2") == models.CommunicationStatusFailed
	}, time.Second, 5*time.Millisecond)
}

func TestDispatchWithoutPublisherOnlyLogs(t *testing.T) {
	parents := &fakeParentRepo{items: map[string]*models.Parent{parentID1: {ID: parentID1}}}
	statuses := newFakeCommunicationRepo()
	svc := NewDispatchService(parents, statuses, nil, testDispatchConfig, nil)

	err := svc.handle(context.Background(), dispatchJob(models.Communication{ID: "c3", ParentID: parentID1}))
	assert.NoError(t, err)
	assert.Empty(t, statuses.status("c3"))
}

func TestDispatchBeforeStartFails(t *testing.T) {
	svc := NewDispatchService(&fakeParentRepo{}, newFakeCommunicationRepo(), nil, testDispatchConfig, nil)
	assert.Error(t, svc.Dispatch(context.Background(), models.Communication{ID: "c4"}))
}
