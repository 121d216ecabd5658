package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
	"github.com/noah-isme/nemi-admin-api/pkg/export"
)

func TestEnrollmentsReportRequiresLookupMaps(t *testing.T) {
	_, err := EnrollmentsReport(nil, nil, map[string]string{}, time.UTC)
	require.Error(t, err)
	assert.Equal(t, http.StatusPreconditionFailed, appErrors.FromError(err).Status)
	assert.Equal(t, "insufficient data", appErrors.FromError(err).Message)

	_, err = PaymentsReport(nil, nil, time.UTC)
	assert.Equal(t, http.StatusPreconditionFailed, appErrors.FromError(err).Status)
}

func TestEnrollmentsReportFallsBackPerEntry(t *testing.T) {
	enrollments := []models.Enrollment{{
		ID:             enrollmentID1,
		ProgramID:      programID1,
		ChildID:        childID1,
		Status:         models.EnrollmentStatusConfirmed,
		Amount:         decimal.RequireFromString("150.5"),
		EnrollmentDate: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
	}}

	data, err := EnrollmentsReport(enrollments, map[string]string{programID1: "Verano"}, map[string]string{}, time.UTC)
	require.NoError(t, err)

	require.Len(t, data.Rows, 1)
	row := data.Rows[0]
	assert.Equal(t, "Verano", row["programName"])
	assert.Equal(t, "Niño "+childID1, row["childName"])
	assert.Equal(t, "5/1/2024", row["enrollmentDate"])
	assert.Equal(t, "$150.50", row["amount"])
	assert.Equal(t, "Confirmado", row["status"])
	assert.Equal(t, "reporte-inscripciones", data.Filename)
}

func TestPaymentsReportLabelsAndFallback(t *testing.T) {
	missing := "66666666-6666-4666-8666-666666666666"
	payments := []models.Payment{
		{ID: "p1", EnrollmentID: enrollmentID1, Amount: decimal.RequireFromString("100"), Method: models.PaymentMethodTransfer, Status: models.PaymentStatusCompleted},
		{ID: "p2", EnrollmentID: missing, Amount: decimal.RequireFromString("20"), Method: "crypto", Status: models.PaymentStatusPending},
	}
	labels := map[string]models.EnrollmentLabel{
		enrollmentID1: {ID: enrollmentID1, ProgramName: "Verano", ChildName: "Lucía"},
	}

	data, err := PaymentsReport(payments, labels, nil)
	require.NoError(t, err)

	assert.Equal(t, "Verano - Lucía", data.Rows[0]["enrollmentDetails"])
	assert.Equal(t, "Transferencia", data.Rows[0]["method"])
	assert.Equal(t, "Completado", data.Rows[0]["status"])
	assert.Equal(t, "Inscripción "+missing, data.Rows[1]["enrollmentDetails"])
	assert.Equal(t, "crypto", data.Rows[1]["method"])
}

func TestReportDatesFollowConfiguredZone(t *testing.T) {
	// 2024-05-31 20:00 in CST, stored as UTC by the session.
	paidAt := time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC)
	payments := []models.Payment{{ID: "p1", EnrollmentID: enrollmentID1, PaymentDate: paidAt, Amount: decimal.RequireFromString("10"), Status: models.PaymentStatusCompleted}}
	enrollments := []models.Enrollment{{ID: enrollmentID1, ProgramID: programID1, ChildID: childID1, EnrollmentDate: paidAt}}

	paymentsData, err := PaymentsReport(payments, map[string]models.EnrollmentLabel{}, cst)
	require.NoError(t, err)
	assert.Equal(t, "31/5/2024", paymentsData.Rows[0]["paymentDate"])

	enrollmentsData, err := EnrollmentsReport(enrollments, map[string]string{}, map[string]string{}, cst)
	require.NoError(t, err)
	assert.Equal(t, "31/5/2024", enrollmentsData.Rows[0]["enrollmentDate"])

	utcData, err := PaymentsReport(payments, map[string]models.EnrollmentLabel{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "1/6/2024", utcData.Rows[0]["paymentDate"])

	start, end := monthBounds(time.Date(2024, 5, 31, 21, 0, 0, 0, cst), cst)
	assert.False(t, paidAt.Before(start))
	assert.True(t, paidAt.Before(end))
}

func TestChildrenAndParentsReportDefaults(t *testing.T) {
	children := ChildrenReport([]models.Child{{ID: childID1, Name: "Lucía", ParentID: parentID1}})
	assert.Equal(t, "Ninguna", children.Rows[0]["allergies"])

	parents := ParentsReport([]models.Parent{{ID: parentID1, Name: "Ana"}})
	assert.Equal(t, "No especificada", parents.Rows[0]["address"])
	assert.Len(t, parents.Columns, 6)
}

func newTestReportService() *ReportService {
	programs := newFakeProgramRepo(models.Program{ID: programID1, Name: "Verano", Status: models.ProgramStatusActive, Price: decimal.RequireFromString("99.9")})
	children := newFakeChildRepo(models.Child{ID: childID1, Name: "Lucía", ParentID: parentID1})
	enrollments := &fakeEnrollmentRepo{
		items: []models.Enrollment{
			{ID: enrollmentID1, ProgramID: programID1, ChildID: childID1, Status: models.EnrollmentStatusPending},
			{ID: "e2", ProgramID: "gone", ChildID: childID1, Status: models.EnrollmentStatusCancelled},
		},
	}
	src := ReportSources{
		Children:    children,
		Parents:     &fakeParentRepo{items: map[string]*models.Parent{}},
		Programs:    programs,
		Enrollments: enrollments,
		Payments:    &fakePaymentRepo{},
	}
	return NewReportService(src, nil, nil, nil, nil, nil)
}

func TestReportServiceGeneratesCSVWithLookupMaps(t *testing.T) {
	svc := newTestReportService()

	doc, err := svc.Generate(context.Background(), ReportEnrollments, export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "reporte-inscripciones.csv", doc.Filename)
	content := string(doc.Data)
	assert.True(t, strings.HasPrefix(content, "ID,Programa,Niño,Fecha,Monto,Estado"))
	assert.Contains(t, content, "Verano,Lucía")
	assert.Contains(t, content, "Programa gone,Lucía")
}

func TestReportServiceGeneratesEmptyPDF(t *testing.T) {
	svc := newTestReportService()

	doc, err := svc.Generate(context.Background(), ReportPayments, export.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "reporte-pagos.pdf", doc.Filename)
	assert.True(t, strings.HasPrefix(string(doc.Data), "%PDF"))
}

func TestReportServiceUnknownType(t *testing.T) {
	svc := newTestReportService()

	_, err := svc.Generate(context.Background(), ReportType("grades"), export.FormatPDF)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}
