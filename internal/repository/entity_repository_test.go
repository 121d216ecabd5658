package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/nemi-admin-api/internal/models"
)

func TestChildRepositoryListByParent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewChildRepository(db)

	birth := time.Date(2019, 4, 2, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "birth_date", "age", "allergies", "medical_notes", "interests", "parent_id", "created_at", "updated_at"}).
		AddRow("c1", "Lucía", birth, 5, nil, nil, "pintura", "par-1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + childColumns + " FROM children WHERE parent_id = $1 ORDER BY name ASC LIMIT 20 OFFSET 0")).
		WithArgs("par-1").
		WillReturnRows(rows)

	children, err := repo.List(context.Background(), models.ChildFilter{ParentID: "par-1", ListParams: models.ListParams{Limit: 20}})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "2019-04-02", children[0].BirthDate.String())
	require.NotNil(t, children[0].Interests)
	assert.Equal(t, "pintura", *children[0].Interests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParentRepositoryExists(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewParentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM parents WHERE id = $1)")).
		WithArgs("par-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), "par-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnrollmentRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "program_id", "child_id", "status", "amount", "discount", "notes", "enrollment_date", "created_at", "updated_at"}).
		AddRow("e1", "p1", "c1", "confirmed", "200.00", "0.00", nil, now, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + enrollmentColumns + " FROM enrollments WHERE program_id = $1 AND child_id = $2 ORDER BY enrollment_date DESC LIMIT 100 OFFSET 0")).
		WithArgs("p1", "c1").
		WillReturnRows(rows)

	enrollments, err := repo.List(context.Background(), models.EnrollmentFilter{ProgramID: "p1", ChildID: "c1"})
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, models.EnrollmentStatusConfirmed, enrollments[0].Status)
	assert.Equal(t, "200", enrollments[0].Amount.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryLabelsByIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT e.id, p.name AS program_name, c.name AS child_name")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "program_name", "child_name"}).AddRow("e1", "Verano", "Lucía"))

	labels, err := repo.LabelsByIDs(context.Background(), []string{"e1"})
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "Verano", labels[0].ProgramName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChildRepositoryNamesByIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewChildRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM children WHERE id = ANY($1)")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("c1", "Lucía").AddRow("c2", "Mateo"))

	names, err := repo.NamesByIDs(context.Background(), []string{"c1", "c2", "c3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"c1": "Lucía", "c2": "Mateo"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepositoryNamesByIDsEmpty(t *testing.T) {
	db, _, cleanup := newMock(t)
	defer cleanup()
	repo := NewProgramRepository(db)

	names, err := repo.NamesByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestAttendanceRepositoryListByDay(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day, err := models.ParseDate("2024-03-09")
	require.NoError(t, err)
	start := day.Time
	end := start.AddDate(0, 0, 1)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + attendanceColumns + " FROM attendance WHERE date >= $1 AND date < $2 ORDER BY date DESC LIMIT 100 OFFSET 0")).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "child_id", "date", "present", "notes", "created_at", "updated_at"}).
			AddRow("a1", "c1", start.Add(9*time.Hour), true, nil, start, start))

	records, err := repo.List(context.Background(), models.AttendanceFilter{Date: &day}, start, end)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Present)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommunicationRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCommunicationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE communications SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("m1", models.CommunicationStatusFailed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "m1", models.CommunicationStatusFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewInventoryRepository(db)

	mock.ExpectExec("INSERT INTO inventory").WillReturnResult(sqlmock.NewResult(1, 1))

	item := &models.InventoryItem{Name: "Crayones", Quantity: 12}
	require.NoError(t, repo.Create(context.Background(), item))
	assert.NotEmpty(t, item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByUsername(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "name", "email", "role", "created_at", "updated_at"}).
		AddRow("u1", "admin", "hash", "Admin", "admin@nemi.local", string(models.RoleAdmin), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE username = $1 LIMIT 1")).
		WithArgs("admin").
		WillReturnRows(rows)

	user, err := repo.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCount(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}
