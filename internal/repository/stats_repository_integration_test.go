package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/nemi-admin-api/pkg/database"
)

// NEMI_TEST_DATABASE_URL points at a disposable Postgres database.
func newIntegrationDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("NEMI_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("NEMI_TEST_DATABASE_URL not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db.DB))
	return db
}

type activeCounts struct {
	children int
	programs int
}

func readActiveCounts(t *testing.T, repo *StatsRepository) activeCounts {
	t.Helper()
	ctx := context.Background()
	children, err := repo.ActiveChildrenCount(ctx)
	require.NoError(t, err)
	programs, err := repo.ActiveProgramsCount(ctx)
	require.NoError(t, err)
	return activeCounts{children: children, programs: programs}
}

// P1 has E1 (confirmed, C1) and E2 (pending, C2) where E2 carries a completed
// payment. C3 is only pending on P2 with no payment. Expect +1 program and +2 children.
func TestStatsRepositoryActiveCountsAgainstPostgres(t *testing.T) {
	db := newIntegrationDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	before := readActiveCounts(t, repo)

	parentID := uuid.NewString()
	p1, p2 := uuid.NewString(), uuid.NewString()
	c1, c2, c3 := uuid.NewString(), uuid.NewString(), uuid.NewString()
	e1, e2, e3 := uuid.NewString(), uuid.NewString(), uuid.NewString()
	paymentID := uuid.NewString()

	t.Cleanup(func() {
		db.MustExec(`DELETE FROM payments WHERE id = $1`, paymentID)
		db.MustExec(`DELETE FROM enrollments WHERE id IN ($1, $2, $3)`, e1, e2, e3)
		db.MustExec(`DELETE FROM children WHERE id IN ($1, $2, $3)`, c1, c2, c3)
		db.MustExec(`DELETE FROM programs WHERE id IN ($1, $2)`, p1, p2)
		db.MustExec(`DELETE FROM parents WHERE id = $1`, parentID)
	})

	db.MustExecContext(ctx, `INSERT INTO parents (id, name, email, phone) VALUES ($1, 'Ana', 'ana@example.com', '555-0100')`, parentID)
	for _, id := range []string{p1, p2} {
		db.MustExecContext(ctx, `INSERT INTO programs (id, name, start_date, end_date, capacity, price, status)
            VALUES ($1, 'Verano', '2024-06-01', '2024-08-31', 20, 100, 'active')`, id)
	}
	for _, id := range []string{c1, c2, c3} {
		db.MustExecContext(ctx, `INSERT INTO children (id, name, birth_date, parent_id) VALUES ($1, 'Niño', '2019-03-01', $2)`, id, parentID)
	}
	insertEnrollment := `INSERT INTO enrollments (id, program_id, child_id, status, amount) VALUES ($1, $2, $3, $4, 100)`
	db.MustExecContext(ctx, insertEnrollment, e1, p1, c1, "confirmed")
	db.MustExecContext(ctx, insertEnrollment, e2, p1, c2, "pending")
	db.MustExecContext(ctx, insertEnrollment, e3, p2, c3, "pending")
	db.MustExecContext(ctx, `INSERT INTO payments (id, enrollment_id, amount, method, status) VALUES ($1, $2, 100.00, 'cash', 'completed')`, paymentID, e2)

	after := readActiveCounts(t, repo)

	assert.Equal(t, 2, after.children-before.children)
	assert.Equal(t, 1, after.programs-before.programs)
}
