package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

type stubProvider struct {
	reply  string
	err    error
	system string
	user   string
}

func (s *stubProvider) Complete(_ context.Context, system, user string) (string, error) {
	s.system, s.user = system, user
	return s.reply, s.err
}

type stubStats struct {
	stats *models.DashboardStats
}

func (s stubStats) Stats(_ context.Context) (*models.DashboardStats, error) {
	return s.stats, nil
}

func TestRouteQuestion(t *testing.T) {
	cases := map[string]AssistantTopic{
		"¿Cuántos NIÑOS hay?":                     TopicChildren,
		"¿Qué programas están activos?":           TopicPrograms,
		"Muéstrame la inscripción de Lucía":       TopicEnrollments,
		"¿Cuántos pagos hay pendientes?":          TopicPayments,
		"¿Quién está ausente hoy?":                TopicAttendance,
		"Dame las estadísticas":                   TopicStats,
		"¿Qué niños están en el programa Verano?": TopicPrograms,
		"Hola":                                    TopicUnknown,
		"¿Qué mensajes se enviaron a los padres?": TopicMessages,
	}
	for message, want := range cases {
		assert.Equal(t, want, RouteQuestion(message), message)
	}
}

func newTestAssistant(provider *stubProvider) *AssistantService {
	src := AssistantSources{
		Programs: newFakeProgramRepo(models.Program{ID: programID1, Name: "Verano", Status: models.ProgramStatusActive, Price: decimal.RequireFromString("1500")}),
		Children: newFakeChildRepo(),
		Stats:    stubStats{stats: &models.DashboardStats{ChildrenCount: 4, ActivePrograms: 1, MonthlyIncome: "300.00"}},
	}
	if provider == nil {
		return NewAssistantService(src, nil, nil, nil, nil)
	}
	return NewAssistantService(src, provider, nil, nil, nil)
}

func TestAssistantSummarizesWithoutProvider(t *testing.T) {
	svc := newTestAssistant(nil)

	res, err := svc.Ask(context.Background(), models.AssistantRequest{Message: "¿Qué programas hay?"})
	require.NoError(t, err)
	assert.Equal(t, "programs", res.Topic)
	assert.Contains(t, res.Reply, "Hay 1 programas:")
	assert.Contains(t, res.Reply, "Verano (Activo")

	res, err = svc.Ask(context.Background(), models.AssistantRequest{Message: "¿Cuántos niños hay?"})
	require.NoError(t, err)
	assert.Equal(t, "No hay niños registrados.", res.Reply)

	res, err = svc.Ask(context.Background(), models.AssistantRequest{Message: "Hola"})
	require.NoError(t, err)
	assert.Equal(t, assistantNoTopic, res.Reply)
	assert.Empty(t, res.Topic)
}

func TestAssistantSummarizesMessagesWithSpanishLabels(t *testing.T) {
	messages := newFakeCommunicationRepo()
	messages.items["c1"] = &models.Communication{
		ID:      "c1",
		Type:    models.CommunicationTypeNotification,
		Subject: "Excursión",
		Date:    time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC),
		Status:  models.CommunicationStatusRead,
	}
	svc := NewAssistantService(AssistantSources{Messages: messages}, nil, nil, cst, nil)

	res, err := svc.Ask(context.Background(), models.AssistantRequest{Message: "Muéstrame los avisos"})
	require.NoError(t, err)

	assert.Equal(t, "communications", res.Topic)
	assert.Contains(t, res.Reply, "Hay 1 mensajes:")
	assert.Contains(t, res.Reply, "31/5/2024 Notificación: Excursión")
}

func TestAssistantSendsContextToProvider(t *testing.T) {
	provider := &stubProvider{reply: "Hay cuatro niños activos."}
	svc := newTestAssistant(provider)

	res, err := svc.Ask(context.Background(), models.AssistantRequest{Message: "Dame el total del mes"})
	require.NoError(t, err)

	assert.Equal(t, "Hay cuatro niños activos.", res.Reply)
	assert.Equal(t, "stats", res.Topic)
	assert.Contains(t, provider.system, "Tabla programs:")
	assert.Contains(t, provider.user, "Dame el total del mes")
	assert.Contains(t, provider.user, `"monthlyIncome": "300.00"`)
}

func TestAssistantProviderFailureIsBadGateway(t *testing.T) {
	svc := newTestAssistant(&stubProvider{err: errors.New("timeout")})

	_, err := svc.Ask(context.Background(), models.AssistantRequest{Message: "programas"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, appErrors.FromError(err).Status)
}

func TestAssistantRejectsEmptyMessage(t *testing.T) {
	svc := newTestAssistant(nil)

	_, err := svc.Ask(context.Background(), models.AssistantRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}
