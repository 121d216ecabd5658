package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
	"github.com/noah-isme/nemi-admin-api/pkg/export"
	"github.com/noah-isme/nemi-admin-api/pkg/llm"
)

// AssistantTopic is the dataset a question was routed to.
type AssistantTopic string

const (
	TopicPrograms    AssistantTopic = "programs"
	TopicChildren    AssistantTopic = "children"
	TopicParents     AssistantTopic = "parents"
	TopicEnrollments AssistantTopic = "enrollments"
	TopicPayments    AssistantTopic = "payments"
	TopicActivities  AssistantTopic = "activities"
	TopicAttendance  AssistantTopic = "attendance"
	TopicMessages    AssistantTopic = "communications"
	TopicStats       AssistantTopic = "stats"
	TopicUnknown     AssistantTopic = ""
)

const (
	assistantRowLimit = 50
	assistantNoTopic  = "No se pudo determinar qué datos buscar. Por favor, intenta ser más específico con tu pregunta."
)

// assistantRoutes is checked in order; the first matching keyword wins.
var assistantRoutes = []struct {
	topic    AssistantTopic
	keywords []string
}{
	{TopicMessages, []string{"comunicacion", "mensaje", "aviso"}},
	{TopicPrograms, []string{"programa"}},
	{TopicChildren, []string{"nino", "hijo"}},
	{TopicParents, []string{"padre", "madre"}},
	{TopicEnrollments, []string{"inscripcion", "matricula"}},
	{TopicPayments, []string{"pago", "cobro"}},
	{TopicActivities, []string{"actividad"}},
	{TopicAttendance, []string{"asistencia", "presente", "ausente"}},
	{TopicStats, []string{"estadistica", "total", "conteo"}},
}

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// RouteQuestion picks the dataset a question is about. Matching ignores case and accents.
func RouteQuestion(message string) AssistantTopic {
	folded := accentFolder.Replace(strings.ToLower(message))
	for _, route := range assistantRoutes {
		for _, keyword := range route.keywords {
			if strings.Contains(folded, keyword) {
				return route.topic
			}
		}
	}
	return TopicUnknown
}

const assistantSchema = `Base de datos del sistema NEMI:

Tabla programs: id, name, description, start_date, end_date, capacity, price, status (draft|active|complete|cancelled)
Tabla parents: id, name, email, phone, emergency_phone, neighborhood, address, notes
Tabla children: id, name, birth_date, age, allergies, medical_notes, interests, parent_id -> parents
Tabla enrollments: id, program_id -> programs, child_id -> children, status (pending|confirmed|cancelled), amount, discount, notes, enrollment_date
Tabla payments: id, enrollment_id -> enrollments, amount, payment_date, method (cash|transfer|card|other), status (pending|completed|refunded|failed), notes
Tabla activities: id, program_id -> programs, name, description, date, start_time, end_time
Tabla attendance: id, child_id -> children, date, present, notes
Tabla communications: id, parent_id -> parents, type (email|sms|notification), subject, content, date, status (sent|read|failed)
Tabla inventory: id, name, quantity, category, notes
`

const assistantSystemPrompt = `Eres NEMI Bot, un asistente virtual para el sistema de gestión NEMI.
Ayudas a los usuarios a obtener información sobre niños, programas, pagos, inscripciones y otras actividades del sistema, basándote en la información de la base de datos.
Si te preguntan sobre algo que no existe en la base de datos, indica claramente que no tienes esa información.

Información del esquema de la base de datos:
` + assistantSchema + `
Formatea tus respuestas de manera clara y amigable, en lenguaje natural.`

type assistantStats interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type assistantAttendanceSource interface {
	List(ctx context.Context, filter models.AttendanceFilter, dayStart, dayEnd time.Time) ([]models.Attendance, error)
}

type assistantActivitySource interface {
	List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error)
}

type assistantCommunicationSource interface {
	List(ctx context.Context, filter models.CommunicationFilter) ([]models.Communication, error)
}

// AssistantSources groups the readers the assistant may consult.
type AssistantSources struct {
	Programs    reportProgramSource
	Children    reportChildSource
	Parents     reportParentSource
	Enrollments reportEnrollmentSource
	Payments    reportPaymentSource
	Activities  assistantActivitySource
	Attendance  assistantAttendanceSource
	Messages    assistantCommunicationSource
	Stats       assistantStats
}

// AssistantService answers free-form questions using routed database context.
type AssistantService struct {
	src       AssistantSources
	provider  llm.Provider
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

// NewAssistantService constructs the assistant. A nil provider answers with plain data summaries.
func NewAssistantService(src AssistantSources, provider llm.Provider, validate *validator.Validate, loc *time.Location, logger *zap.Logger) *AssistantService {
	if validate == nil {
		validate = NewValidator()
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{src: src, provider: provider, validator: validate, logger: logger, location: loc, now: time.Now}
}

// Ask routes the question, loads matching data and produces a reply.
func (s *AssistantService) Ask(ctx context.Context, req models.AssistantRequest) (*models.AssistantResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid assistant payload")
	}

	topic := RouteQuestion(req.Message)
	var (
		data    interface{}
		summary string
	)
	if topic == TopicUnknown {
		summary = assistantNoTopic
	} else {
		var err error
		data, summary, err = s.load(ctx, topic)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assistant context")
		}
	}

	if s.provider == nil {
		return &models.AssistantResponse{Reply: summary, Topic: string(topic)}, nil
	}

	prompt, err := assistantPrompt(req.Message, data, summary)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build assistant prompt")
	}
	reply, err := s.provider.Complete(ctx, assistantSystemPrompt, prompt)
	if err != nil {
		s.logger.Warn("assistant completion failed", zap.String("topic", string(topic)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "assistant backend unavailable")
	}
	return &models.AssistantResponse{Reply: reply, Topic: string(topic)}, nil
}

func assistantPrompt(message string, data interface{}, summary string) (string, error) {
	result := summary
	if data != nil {
		raw, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		result = string(raw)
	}
	return fmt.Sprintf(`Mensaje del usuario: %s

Resultados de la consulta a la base de datos:
%s

Responde a la consulta del usuario de manera amigable usando los datos proporcionados.
No menciones que recibiste datos en JSON.`, message, result), nil
}

var assistantWindow = models.ListParams{Limit: assistantRowLimit}

func (s *AssistantService) load(ctx context.Context, topic AssistantTopic) (interface{}, string, error) {
	switch topic {
	case TopicPrograms:
		programs, err := s.src.Programs.List(ctx, models.ProgramFilter{ListParams: assistantWindow})
		if err != nil {
			return nil, "", err
		}
		lines := make([]string, 0, len(programs))
		for _, p := range programs {
			lines = append(lines, fmt.Sprintf("%s (%s, %s - %s, %s)", p.Name, export.TranslateStatus(string(p.Status)), export.ShortDate(p.StartDate.Time), export.ShortDate(p.EndDate.Time), export.Currency(p.Price)))
		}
		return programs, summarize("programas", lines), nil
	case TopicChildren:
		children, err := s.src.Children.List(ctx, models.ChildFilter{ListParams: assistantWindow})
		if err != nil {
			return nil, "", err
		}
		lines := make([]string, 0, len(children))
		for _, c := range children {
			lines = append(lines, fmt.Sprintf("%s (nacimiento %s)", c.Name, export.ShortDate(c.BirthDate.Time)))
		}
		return children, summarize("niños", lines), nil
	case TopicParents:
		parents, err := s.src.Parents.List(ctx, models.ParentFilter{ListParams: assistantWindow})
		if err != nil {
			return nil, "", err
		}
		lines := make([]string, 0, len(parents))
		for _, p := range parents {
			lines = append(lines, fmt.Sprintf("%s (%s, %s)", p.Name, p.Email, p.Phone))
		}
		return parents, summarize("padres", lines), nil
	case TopicEnrollments:
		enrollments, err := s.src.Enrollments.List(ctx, models.EnrollmentFilter{ListParams: assistantWindow})
		if err != nil {
			return nil, "", err
		}
		lines := make([]string, 0, len(enrollments))
		for _, e := range enrollments {
			lines = append(lines, fmt.Sprintf("%s: %s, %s", e.ID, export.TranslateStatus(string(e.Status)), export.Currency(e.Amount)))
		}
		return enrollments, summarize("inscripciones", lines), nil
	case TopicPayments:
		payments, err := s.src.Payments.List(ctx, models.PaymentFilter{ListParams: assistantWindow})
		if err != nil {
			return nil, "", err
		}
		lines := make([]string, 0, len(payments))
		for _, p := range payments {
			lines = append(lines, fmt.Sprintf("%s %s, %s (%s)", export.ShortDate(p.PaymentDate.In(s.location)), export.Currency(p.Amount), export.TranslatePaymentMethod(string(p.Method)), export.TranslateStatus(string(p.Status))))
		}
		return payments, summarize("pagos", lines), nil
	case TopicActivities:
		activities, err := s.src.Activities.List(ctx, models.ActivityFilter{ListParams: assistantWindow})
		if err != nil {
			return nil, "", err
		}
		lines := make([]string, 0, len(activities))
		for _, a := range activities {
			lines = append(lines, fmt.Sprintf("%s (%s %s-%s)", a.Name, export.ShortDate(a.Date.Time), a.StartTime, a.EndTime))
		}
		return activities, summarize("actividades", lines), nil
	case TopicMessages:
		messages, err := s.src.Messages.List(ctx, models.CommunicationFilter{ListParams: assistantWindow})
		if err != nil {
			return nil, "", err
		}
		lines := make([]string, 0, len(messages))
		for _, m := range messages {
			lines = append(lines, fmt.Sprintf("%s %s: %s (%s)", export.ShortDate(m.Date.In(s.location)), export.TranslateCommunicationType(string(m.Type)), m.Subject, export.TranslateStatus(string(m.Status))))
		}
		return messages, summarize("mensajes", lines), nil
	case TopicAttendance:
		today := models.NewDate(s.now().In(s.location))
		from, to := dayBounds(s.now().In(s.location), s.location)
		records, err := s.src.Attendance.List(ctx, models.AttendanceFilter{ListParams: assistantWindow, Date: &today}, from, to)
		if err != nil {
			return nil, "", err
		}
		present := 0
		for _, r := range records {
			if r.Present {
				present++
			}
		}
		return records, fmt.Sprintf("Asistencia de hoy: %d de %d niños presentes.", present, len(records)), nil
	case TopicStats:
		stats, err := s.src.Stats.Stats(ctx)
		if err != nil {
			return nil, "", err
		}
		return stats, fmt.Sprintf("Niños activos: %d\nProgramas activos: %d\nIngresos del mes: $%s\nAsistencia de hoy: %d de %d",
			stats.ChildrenCount, stats.ActivePrograms, stats.MonthlyIncome, stats.TodayAttendance.Present, stats.TodayAttendance.Total), nil
	default:
		return nil, assistantNoTopic, nil
	}
}

func summarize(label string, lines []string) string {
	if len(lines) == 0 {
		return fmt.Sprintf("No hay %s registrados.", label)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hay %d %s:", len(lines), label)
	for _, line := range lines {
		b.WriteString("\n- ")
		b.WriteString(line)
	}
	return b.String()
}
