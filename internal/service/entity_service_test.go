package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/internal/repository"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

func mustDate(t *testing.T, raw string) models.Date {
	t.Helper()
	d, err := models.ParseDate(raw)
	require.NoError(t, err)
	return d
}

func TestProgramServiceCreateDefaultsToDraft(t *testing.T) {
	repo := newFakeProgramRepo()
	cache := &recordingInvalidator{}
	svc := NewProgramService(repo, nil, cache, nil)

	program, err := svc.Create(context.Background(), models.CreateProgramRequest{
		Name:      "Verano",
		StartDate: mustDate(t, "2024-06-01"),
		EndDate:   mustDate(t, "2024-07-31"),
		Capacity:  20,
		Price:     decimal.RequireFromString("150.505"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.ProgramStatusDraft, program.Status)
	assert.Equal(t, "150.51", program.Price.StringFixed(2))
	assert.Equal(t, []string{dashboardCachePattern}, cache.patterns)
}

func TestProgramServiceCreateRejectsEndBeforeStart(t *testing.T) {
	svc := NewProgramService(newFakeProgramRepo(), nil, nil, nil)

	_, err := svc.Create(context.Background(), models.CreateProgramRequest{
		Name:      "Invierno",
		StartDate: mustDate(t, "2024-12-01"),
		EndDate:   mustDate(t, "2024-11-01"),
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "endDate", appErr.Details[0].Field)
}

func TestProgramServiceListValidatesStatus(t *testing.T) {
	repo := newFakeProgramRepo()
	svc := NewProgramService(repo, nil, nil, nil)

	_, _, err := svc.List(context.Background(), models.ProgramFilter{Status: "archived"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	_, page, err := svc.List(context.Background(), models.ProgramFilter{Status: models.ProgramStatusActive})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultListLimit, page.Limit)
	assert.Equal(t, models.DefaultListLimit, repo.lastList.Limit)
}

func TestProgramServiceUpdateIsPartial(t *testing.T) {
	repo := newFakeProgramRepo(models.Program{
		ID:        programID1,
		Name:      "Verano",
		StartDate: mustDate(t, "2024-06-01"),
		EndDate:   mustDate(t, "2024-07-31"),
		Capacity:  20,
		Status:    models.ProgramStatusDraft,
	})
	svc := NewProgramService(repo, nil, nil, nil)

	status := models.ProgramStatusActive
	updated, err := svc.Update(context.Background(), programID1, models.UpdateProgramRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.ProgramStatusActive, updated.Status)
	assert.Equal(t, "Verano", updated.Name)
	assert.Equal(t, 20, updated.Capacity)
}

func TestProgramServiceNotFoundAndConflict(t *testing.T) {
	repo := newFakeProgramRepo()
	svc := NewProgramService(repo, nil, nil, nil)

	_, err := svc.Get(context.Background(), programID1)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)

	repo.deleteErr = fmt.Errorf("delete program: %w", repository.ErrReferenced)
	err = svc.Delete(context.Background(), programID1)
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)
}

func TestChildServiceCreateRequiresExistingParent(t *testing.T) {
	cache := &recordingInvalidator{}
	svc := NewChildService(newFakeChildRepo(), existsIn(parentID1), nil, cache, nil)

	req := models.CreateChildRequest{
		Name:      "Lucía",
		BirthDate: mustDate(t, "2019-03-14"),
		ParentID:  "99999999-9999-4999-8999-999999999999",
	}
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "parentId", appErr.Details[0].Field)
	assert.Empty(t, cache.patterns)

	req.ParentID = parentID1
	child, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, child.ID)
	assert.Len(t, cache.patterns, 1)
}

func TestChildServiceValidationDetailsUseJSONNames(t *testing.T) {
	svc := NewChildService(newFakeChildRepo(), existsIn(parentID1), nil, nil, nil)

	_, err := svc.Create(context.Background(), models.CreateChildRequest{ParentID: "nope"})
	require.Error(t, err)

	fields := map[string]string{}
	for _, d := range appErrors.FromError(err).Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "is required", fields["birthDate"])
	assert.Equal(t, "must be a valid UUID", fields["parentId"])
}

func TestEnrollmentServiceCreateDefaultsToPending(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, existsIn(programID1), existsIn(childID1), nil, nil, nil)

	enrollment, err := svc.Create(context.Background(), models.CreateEnrollmentRequest{
		ProgramID: programID1,
		ChildID:   childID1,
		Amount:    decimal.RequireFromString("200"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.EnrollmentStatusPending, enrollment.Status)
	assert.False(t, enrollment.EnrollmentDate.IsZero())
	assert.Len(t, repo.items, 1)
}

func TestEnrollmentServiceRejectsUnknownChild(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollmentRepo{}, existsIn(programID1), existsIn(), nil, nil, nil)

	_, err := svc.Create(context.Background(), models.CreateEnrollmentRequest{ProgramID: programID1, ChildID: childID1})
	require.Error(t, err)
	assert.Equal(t, "childId", appErrors.FromError(err).Details[0].Field)
}

func TestPaymentServiceCreateDefaults(t *testing.T) {
	repo := &fakePaymentRepo{}
	cache := &recordingInvalidator{}
	svc := NewPaymentService(repo, existsIn(enrollmentID1), nil, cache, nil)

	payment, err := svc.Create(context.Background(), models.CreatePaymentRequest{
		EnrollmentID: enrollmentID1,
		Amount:       decimal.RequireFromString("100"),
		Method:       models.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.WithinDuration(t, time.Now().UTC(), payment.PaymentDate, time.Minute)
	assert.Len(t, cache.patterns, 1)
}

func TestPaymentServiceRejectsNonPositiveAmount(t *testing.T) {
	svc := NewPaymentService(&fakePaymentRepo{}, existsIn(enrollmentID1), nil, nil, nil)

	_, err := svc.Create(context.Background(), models.CreatePaymentRequest{
		EnrollmentID: enrollmentID1,
		Amount:       decimal.Zero,
		Method:       models.PaymentMethodCard,
	})
	require.Error(t, err)
	assert.Equal(t, "amount", appErrors.FromError(err).Details[0].Field)
}

func TestPaymentServiceRoundsAmountBeforeValidating(t *testing.T) {
	repo := &fakePaymentRepo{}
	svc := NewPaymentService(repo, existsIn(enrollmentID1), nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CreatePaymentRequest{
		EnrollmentID: enrollmentID1,
		Amount:       decimal.RequireFromString("0.004"),
		Method:       models.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, "amount", appErrors.FromError(err).Details[0].Field)
	assert.Empty(t, repo.items)

	payment, err := svc.Create(ctx, models.CreatePaymentRequest{
		EnrollmentID: enrollmentID1,
		Amount:       decimal.RequireFromString("10.005"),
		Method:       models.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, "10.01", payment.Amount.StringFixed(2))

	tiny := decimal.RequireFromString("0.001")
	_, err = svc.Update(ctx, payment.ID, models.UpdatePaymentRequest{Amount: &tiny})
	require.Error(t, err)
	assert.Equal(t, "amount", appErrors.FromError(err).Details[0].Field)
	assert.Equal(t, "10.01", repo.items[0].Amount.StringFixed(2))
}

func TestActivityServiceRejectsInvertedTimes(t *testing.T) {
	svc := NewActivityService(nil, existsIn(programID1), nil, nil)

	_, err := svc.Create(context.Background(), models.CreateActivityRequest{
		ProgramID: programID1,
		Name:      "Pintura",
		Date:      mustDate(t, "2024-06-03"),
		StartTime: "11:00",
		EndTime:   "10:00",
	})
	require.Error(t, err)
	assert.Equal(t, "endTime", appErrors.FromError(err).Details[0].Field)
}

func TestAttendanceServiceListRequiresFilter(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceRepo{}, existsIn(childID1), nil, nil, nil, nil)

	_, _, err := svc.List(context.Background(), models.AttendanceFilter{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestAttendanceServiceListUsesLocalDayBounds(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)
	repo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(repo, existsIn(childID1), nil, nil, loc, nil)

	day := mustDate(t, "2024-05-14")
	_, _, err := svc.List(context.Background(), models.AttendanceFilter{Date: &day})
	require.NoError(t, err)

	assert.True(t, repo.lastStart.Equal(time.Date(2024, 5, 14, 0, 0, 0, 0, loc)))
	assert.True(t, repo.lastEnd.Equal(time.Date(2024, 5, 15, 0, 0, 0, 0, loc)))
}

func TestInventoryServiceCreate(t *testing.T) {
	svc := NewInventoryService(nil, nil, nil)

	_, err := svc.Create(context.Background(), models.CreateInventoryRequest{Name: "Crayones"})
	require.Error(t, err)
	assert.Equal(t, "quantity", appErrors.FromError(err).Details[0].Field)
}

func TestCommunicationServiceDefaultsToSentAndDispatches(t *testing.T) {
	repo := newFakeCommunicationRepo()
	dispatcher := &stubDispatcher{}
	svc := NewCommunicationService(repo, existsIn(parentID1), dispatcher, nil, nil)

	communication, err := svc.Create(context.Background(), models.CreateCommunicationRequest{
		ParentID: parentID1,
		Type:     models.CommunicationTypeEmail,
		Subject:  "Reunión",
		Content:  "Reunión de padres el viernes",
	})
	require.NoError(t, err)

	assert.Equal(t, models.CommunicationStatusSent, communication.Status)
	require.Len(t, dispatcher.sent, 1)
	assert.Equal(t, communication.ID, dispatcher.sent[0].ID)
}

func TestCommunicationServiceMarksFailedWhenDispatchRejected(t *testing.T) {
	repo := newFakeCommunicationRepo()
	dispatcher := &stubDispatcher{err: fmt.Errorf("queue communications is full")}
	svc := NewCommunicationService(repo, existsIn(parentID1), dispatcher, nil, nil)

	communication, err := svc.Create(context.Background(), models.CreateCommunicationRequest{
		ParentID: parentID1,
		Type:     models.CommunicationTypeSMS,
		Subject:  "Aviso",
		Content:  "Mañana no hay clases",
	})
	require.NoError(t, err)

	assert.Equal(t, models.CommunicationStatusFailed, communication.Status)
	assert.Equal(t, models.CommunicationStatusFailed, repo.status(communication.ID))
}

type stubDispatcher struct {
	sent []models.Communication
	err  error
}

func (s *stubDispatcher) Dispatch(_ context.Context, communication models.Communication) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, communication)
	return nil
}
