package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
	"github.com/noah-isme/nemi-admin-api/pkg/export"
)

// ReportType names a downloadable report.
type ReportType string

const (
	ReportChildren    ReportType = "children"
	ReportParents     ReportType = "parents"
	ReportPrograms    ReportType = "programs"
	ReportEnrollments ReportType = "enrollments"
	ReportPayments    ReportType = "payments"
)

// ReportData is the column projection handed to an exporter.
type ReportData struct {
	Title    string
	Subtitle string
	Columns  []export.Column
	Rows     []map[string]any
	Filename string
}

// ChildrenReport projects children into the children report.
func ChildrenReport(children []models.Child) ReportData {
	rows := make([]map[string]any, 0, len(children))
	for _, child := range children {
		allergies := "Ninguna"
		if child.Allergies != nil && *child.Allergies != "" {
			allergies = *child.Allergies
		}
		rows = append(rows, map[string]any{
			"id":        child.ID,
			"name":      child.Name,
			"birthDate": export.ShortDate(child.BirthDate.Time),
			"age":       child.Age,
			"allergies": allergies,
			"parentId":  child.ParentID,
		})
	}
	return ReportData{
		Title:    "Informe de Niños",
		Subtitle: "Listado completo de niños registrados",
		Columns: []export.Column{
			{Header: "ID", Key: "id"},
			{Header: "Nombre", Key: "name"},
			{Header: "Fecha de Nacimiento", Key: "birthDate"},
			{Header: "Edad", Key: "age"},
			{Header: "Alergias", Key: "allergies"},
			{Header: "ID de Padre", Key: "parentId"},
		},
		Rows:     rows,
		Filename: "reporte-ninos",
	}
}

// ParentsReport projects parents into the parents report.
func ParentsReport(parents []models.Parent) ReportData {
	rows := make([]map[string]any, 0, len(parents))
	for _, parent := range parents {
		address := "No especificada"
		if parent.Address != nil && *parent.Address != "" {
			address = *parent.Address
		}
		rows = append(rows, map[string]any{
			"id":             parent.ID,
			"name":           parent.Name,
			"email":          parent.Email,
			"phone":          parent.Phone,
			"emergencyPhone": parent.EmergencyPhone,
			"address":        address,
		})
	}
	return ReportData{
		Title:    "Informe de Padres",
		Subtitle: "Listado completo de padres registrados",
		Columns: []export.Column{
			{Header: "ID", Key: "id"},
			{Header: "Nombre", Key: "name"},
			{Header: "Email", Key: "email"},
			{Header: "Teléfono", Key: "phone"},
			{Header: "Teléfono de Emergencia", Key: "emergencyPhone"},
			{Header: "Dirección", Key: "address"},
		},
		Rows:     rows,
		Filename: "reporte-padres",
	}
}

// ProgramsReport projects programs into the programs report.
func ProgramsReport(programs []models.Program) ReportData {
	rows := make([]map[string]any, 0, len(programs))
	for _, program := range programs {
		rows = append(rows, map[string]any{
			"id":        program.ID,
			"name":      program.Name,
			"startDate": export.ShortDate(program.StartDate.Time),
			"endDate":   export.ShortDate(program.EndDate.Time),
			"capacity":  program.Capacity,
			"price":     export.Currency(program.Price),
			"status":    export.TranslateStatus(string(program.Status)),
		})
	}
	return ReportData{
		Title:    "Informe de Programas",
		Subtitle: "Listado completo de programas",
		Columns: []export.Column{
			{Header: "ID", Key: "id"},
			{Header: "Nombre", Key: "name"},
			{Header: "Inicio", Key: "startDate"},
			{Header: "Fin", Key: "endDate"},
			{Header: "Capacidad", Key: "capacity"},
			{Header: "Precio", Key: "price"},
			{Header: "Estado", Key: "status"},
		},
		Rows:     rows,
		Filename: "reporte-programas",
	}
}

// EnrollmentsReport needs both lookup maps. A nil map fails with a precondition error,
// while a missing entry falls back to a generic label. Dates print in loc.
func EnrollmentsReport(enrollments []models.Enrollment, programsMap, childrenMap map[string]string, loc *time.Location) (ReportData, error) {
	if programsMap == nil || childrenMap == nil {
		return ReportData{}, appErrors.ErrPreconditionFailed
	}
	loc = reportLocation(loc)
	rows := make([]map[string]any, 0, len(enrollments))
	for _, enrollment := range enrollments {
		programName, ok := programsMap[enrollment.ProgramID]
		if !ok {
			programName = "Programa " + enrollment.ProgramID
		}
		childName, ok := childrenMap[enrollment.ChildID]
		if !ok {
			childName = "Niño " + enrollment.ChildID
		}
		rows = append(rows, map[string]any{
			"id":             enrollment.ID,
			"programName":    programName,
			"childName":      childName,
			"enrollmentDate": export.ShortDate(enrollment.EnrollmentDate.In(loc)),
			"amount":         export.Currency(enrollment.Amount),
			"status":         export.TranslateStatus(string(enrollment.Status)),
		})
	}
	return ReportData{
		Title:    "Informe de Inscripciones",
		Subtitle: "Listado completo de inscripciones",
		Columns: []export.Column{
			{Header: "ID", Key: "id"},
			{Header: "Programa", Key: "programName"},
			{Header: "Niño", Key: "childName"},
			{Header: "Fecha", Key: "enrollmentDate"},
			{Header: "Monto", Key: "amount"},
			{Header: "Estado", Key: "status"},
		},
		Rows:     rows,
		Filename: "reporte-inscripciones",
	}, nil
}

// PaymentsReport needs the enrollments lookup map. Dates print in loc.
func PaymentsReport(payments []models.Payment, enrollmentsMap map[string]models.EnrollmentLabel, loc *time.Location) (ReportData, error) {
	if enrollmentsMap == nil {
		return ReportData{}, appErrors.ErrPreconditionFailed
	}
	loc = reportLocation(loc)
	rows := make([]map[string]any, 0, len(payments))
	for _, payment := range payments {
		details := "Inscripción " + payment.EnrollmentID
		if label, ok := enrollmentsMap[payment.EnrollmentID]; ok {
			details = label.ProgramName + " - " + label.ChildName
		}
		rows = append(rows, map[string]any{
			"id":                payment.ID,
			"enrollmentDetails": details,
			"paymentDate":       export.ShortDate(payment.PaymentDate.In(loc)),
			"amount":            export.Currency(payment.Amount),
			"method":            export.TranslatePaymentMethod(string(payment.Method)),
			"status":            export.TranslateStatus(string(payment.Status)),
		})
	}
	return ReportData{
		Title:    "Informe de Pagos",
		Subtitle: "Listado completo de pagos",
		Columns: []export.Column{
			{Header: "ID", Key: "id"},
			{Header: "Inscripción", Key: "enrollmentDetails"},
			{Header: "Fecha", Key: "paymentDate"},
			{Header: "Monto", Key: "amount"},
			{Header: "Método", Key: "method"},
			{Header: "Estado", Key: "status"},
		},
		Rows:     rows,
		Filename: "reporte-pagos",
	}, nil
}

type reportChildSource interface {
	List(ctx context.Context, filter models.ChildFilter) ([]models.Child, error)
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type reportParentSource interface {
	List(ctx context.Context, filter models.ParentFilter) ([]models.Parent, error)
}

type reportProgramSource interface {
	List(ctx context.Context, filter models.ProgramFilter) ([]models.Program, error)
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type reportEnrollmentSource interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error)
	LabelsByIDs(ctx context.Context, ids []string) ([]models.EnrollmentLabel, error)
}

type reportPaymentSource interface {
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
}

type pdfRenderer interface {
	Generate(title, subtitle string, columns []export.Column, rows []map[string]any, filename string) (*export.Document, error)
}

type csvRenderer interface {
	Generate(columns []export.Column, rows []map[string]any, filename string) (*export.Document, error)
}

// ReportSources groups the entity readers feeding reports.
type ReportSources struct {
	Children    reportChildSource
	Parents     reportParentSource
	Programs    reportProgramSource
	Enrollments reportEnrollmentSource
	Payments    reportPaymentSource
}

// ReportService loads entities, builds lookup maps and renders report documents on demand.
type ReportService struct {
	src     ReportSources
	pdf     pdfRenderer
	csv     csvRenderer
	loc     *time.Location
	metrics *MetricsService
	logger  *zap.Logger
}

// NewReportService constructs a ReportService. Nil renderers fall back to the defaults.
// Timestamps are printed in loc, the zone the dashboard uses for its bounds.
func NewReportService(src ReportSources, pdf pdfRenderer, csv csvRenderer, loc *time.Location, metrics *MetricsService, logger *zap.Logger) *ReportService {
	loc = reportLocation(loc)
	if pdf == nil {
		pdf = export.NewPDFExporter(loc)
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{src: src, pdf: pdf, csv: csv, loc: loc, metrics: metrics, logger: logger}
}

// reportWindow is the row cap applied to every report listing.
var reportWindow = models.ListParams{Limit: models.MaxListLimit}

// Generate renders the report of the given type in the requested format.
func (s *ReportService) Generate(ctx context.Context, reportType ReportType, format export.Format) (*export.Document, error) {
	start := time.Now()
	data, err := s.build(ctx, reportType)
	if err != nil {
		return nil, err
	}

	var doc *export.Document
	switch format {
	case export.FormatCSV:
		doc, err = s.csv.Generate(data.Columns, data.Rows, data.Filename)
	default:
		doc, err = s.pdf.Generate(data.Title, data.Subtitle, data.Columns, data.Rows, data.Filename)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	s.metrics.ObserveReport(string(reportType), string(format), time.Since(start))
	s.logger.Info("report generated",
		zap.String("type", string(reportType)),
		zap.String("format", string(format)),
		zap.Int("rows", len(data.Rows)),
	)
	return doc, nil
}

func (s *ReportService) build(ctx context.Context, reportType ReportType) (ReportData, error) {
	switch reportType {
	case ReportChildren:
		children, err := s.src.Children.List(ctx, models.ChildFilter{ListParams: reportWindow})
		if err != nil {
			return ReportData{}, reportLoadError(err, "children")
		}
		return ChildrenReport(children), nil
	case ReportParents:
		parents, err := s.src.Parents.List(ctx, models.ParentFilter{ListParams: reportWindow})
		if err != nil {
			return ReportData{}, reportLoadError(err, "parents")
		}
		return ParentsReport(parents), nil
	case ReportPrograms:
		programs, err := s.src.Programs.List(ctx, models.ProgramFilter{ListParams: reportWindow})
		if err != nil {
			return ReportData{}, reportLoadError(err, "programs")
		}
		return ProgramsReport(programs), nil
	case ReportEnrollments:
		return s.buildEnrollments(ctx)
	case ReportPayments:
		return s.buildPayments(ctx)
	default:
		return ReportData{}, fieldError("type", fmt.Sprintf("unknown report type %q", reportType))
	}
}

func (s *ReportService) buildEnrollments(ctx context.Context) (ReportData, error) {
	enrollments, err := s.src.Enrollments.List(ctx, models.EnrollmentFilter{ListParams: reportWindow})
	if err != nil {
		return ReportData{}, reportLoadError(err, "enrollments")
	}
	programIDs := make([]string, 0, len(enrollments))
	childIDs := make([]string, 0, len(enrollments))
	for _, enrollment := range enrollments {
		programIDs = append(programIDs, enrollment.ProgramID)
		childIDs = append(childIDs, enrollment.ChildID)
	}
	programsMap, err := s.src.Programs.NamesByIDs(ctx, uniqueIDs(programIDs))
	if err != nil {
		return ReportData{}, reportLoadError(err, "program names")
	}
	childrenMap, err := s.src.Children.NamesByIDs(ctx, uniqueIDs(childIDs))
	if err != nil {
		return ReportData{}, reportLoadError(err, "child names")
	}
	return EnrollmentsReport(enrollments, programsMap, childrenMap, s.loc)
}

func (s *ReportService) buildPayments(ctx context.Context) (ReportData, error) {
	payments, err := s.src.Payments.List(ctx, models.PaymentFilter{ListParams: reportWindow})
	if err != nil {
		return ReportData{}, reportLoadError(err, "payments")
	}
	ids := make([]string, 0, len(payments))
	for _, payment := range payments {
		ids = append(ids, payment.EnrollmentID)
	}
	labels, err := s.src.Enrollments.LabelsByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return ReportData{}, reportLoadError(err, "enrollment labels")
	}
	enrollmentsMap := make(map[string]models.EnrollmentLabel, len(labels))
	for _, label := range labels {
		enrollmentsMap[label.ID] = label
	}
	return PaymentsReport(payments, enrollmentsMap, s.loc)
}

func reportLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

func reportLoadError(err error, what string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+what)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
