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

type stubProgramLister struct {
	active   []models.Program
	upcoming []models.Program
	limits   []int
}

func (s *stubProgramLister) ListActive(_ context.Context, limit int) ([]models.Program, error) {
	s.limits = append(s.limits, limit)
	return s.active, nil
}

func (s *stubProgramLister) ListUpcoming(_ context.Context, limit int) ([]models.Program, error) {
	s.limits = append(s.limits, limit)
	return s.upcoming, nil
}

var cst = time.FixedZone("CST", -6*60*60)

func newTestDashboard(stats *fakeStatsRepo, programs *stubProgramLister, cache dashboardCache) *DashboardService {
	svc := NewDashboardService(stats, programs, cache, nil, nil, DashboardServiceConfig{Location: cst})
	svc.now = func() time.Time { return time.Date(2024, 5, 31, 23, 30, 0, 0, cst) }
	return svc
}

func TestDashboardMonthlyIncomeUsesHalfOpenMonth(t *testing.T) {
	stats := &fakeStatsRepo{income: decimal.RequireFromString("1234.5")}
	svc := newTestDashboard(stats, &stubProgramLister{}, nil)

	income, err := svc.MonthlyIncome(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1234.50", income)
	assert.True(t, stats.incomeArg[0].Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, cst)))
	assert.True(t, stats.incomeArg[1].Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, cst)))
}

func TestDashboardMonthlyIncomeZero(t *testing.T) {
	svc := newTestDashboard(&fakeStatsRepo{income: decimal.Zero}, &stubProgramLister{}, nil)

	income, err := svc.MonthlyIncome(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.00", income)
}

func TestDashboardTodayAttendanceBounds(t *testing.T) {
	stats := &fakeStatsRepo{}
	svc := newTestDashboard(stats, &stubProgramLister{}, nil)

	got, err := svc.TodayAttendanceStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.AttendanceStats{}, got)
	assert.True(t, stats.dayArg[0].Equal(time.Date(2024, 5, 31, 0, 0, 0, 0, cst)))
	assert.True(t, stats.dayArg[1].Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, cst)))
}

func TestDashboardGetComposesPayload(t *testing.T) {
	stats := &fakeStatsRepo{
		children:   2,
		programs:   1,
		income:     decimal.RequireFromString("100"),
		attendance: models.AttendanceStats{Present: 3, Total: 4},
	}
	programs := &stubProgramLister{
		active:   []models.Program{{ID: programID1, Name: "Verano"}},
		upcoming: []models.Program{},
	}
	svc := newTestDashboard(stats, programs, nil)

	dashboard, hit, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.False(t, hit)
	assert.Equal(t, models.DashboardStats{
		ChildrenCount:   2,
		ActivePrograms:  1,
		MonthlyIncome:   "100.00",
		TodayAttendance: models.AttendanceStats{Present: 3, Total: 4},
	}, dashboard.Stats)
	assert.Len(t, dashboard.ActivePrograms, 1)
	assert.Equal(t, []int{activeProgramsLimit, upcomingProgramsLimit}, programs.limits)
}

func TestDashboardStatsFailAsAWhole(t *testing.T) {
	stats := &fakeStatsRepo{children: 5, err: errors.New("connection reset")}
	svc := newTestDashboard(stats, &stubProgramLister{}, nil)

	dashboard, _, err := svc.Get(context.Background())
	require.Error(t, err)

	assert.Nil(t, dashboard)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
}

func TestDashboardServesFromCacheUntilInvalidated(t *testing.T) {
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	stats := &fakeStatsRepo{income: decimal.Zero}
	svc := newTestDashboard(stats, &stubProgramLister{}, cache)

	_, hit, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, stats.calls)

	require.NoError(t, cache.Invalidate(context.Background(), dashboardCachePattern))
	_, hit, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, stats.calls)
}

func TestDashboardCacheKeyFollowsLocalDay(t *testing.T) {
	svc := newTestDashboard(&fakeStatsRepo{}, &stubProgramLister{}, nil)
	assert.Equal(t, "dash:overview:2024-05-31", svc.cacheKey())
}
