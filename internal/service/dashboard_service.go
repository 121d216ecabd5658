package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

const (
	activeProgramsLimit   = 3
	upcomingProgramsLimit = 10
)

type statsRepository interface {
	ActiveChildrenCount(ctx context.Context) (int, error)
	ActiveProgramsCount(ctx context.Context) (int, error)
	CompletedPaymentsTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	AttendanceBetween(ctx context.Context, from, to time.Time) (models.AttendanceStats, error)
}

type dashboardProgramLister interface {
	ListActive(ctx context.Context, limit int) ([]models.Program, error)
	ListUpcoming(ctx context.Context, limit int) ([]models.Program, error)
}

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
	Location *time.Location
}

// DashboardService computes headline statistics and composes the dashboard payload.
type DashboardService struct {
	stats    statsRepository
	programs dashboardProgramLister
	cache    dashboardCache
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
	cfg      DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService. cache and metrics may be nil.
func NewDashboardService(stats statsRepository, programs dashboardProgramLister, cache dashboardCache, metrics *MetricsService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		stats:    stats,
		programs: programs,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		cfg:      cfg,
	}
}

// ActiveChildrenCount counts distinct children with a confirmed enrollment or a completed payment.
func (s *DashboardService) ActiveChildrenCount(ctx context.Context) (int, error) {
	start := time.Now()
	count, err := s.stats.ActiveChildrenCount(ctx)
	s.metrics.ObserveDBQuery("active_children", time.Since(start))
	return count, err
}

// ActiveProgramsCount counts distinct programs under the same rule as ActiveChildrenCount.
func (s *DashboardService) ActiveProgramsCount(ctx context.Context) (int, error) {
	start := time.Now()
	count, err := s.stats.ActiveProgramsCount(ctx)
	s.metrics.ObserveDBQuery("active_programs", time.Since(start))
	return count, err
}

// MonthlyIncome sums completed payments in the current calendar month, formatted with two decimals.
func (s *DashboardService) MonthlyIncome(ctx context.Context) (string, error) {
	from, to := monthBounds(s.now(), s.cfg.Location)
	start := time.Now()
	total, err := s.stats.CompletedPaymentsTotal(ctx, from, to)
	s.metrics.ObserveDBQuery("monthly_income", time.Since(start))
	if err != nil {
		return "", err
	}
	return total.StringFixed(2), nil
}

// TodayAttendanceStats returns present and total attendance rows for the current day.
func (s *DashboardService) TodayAttendanceStats(ctx context.Context) (models.AttendanceStats, error) {
	from, to := dayBounds(s.now().In(s.cfg.Location), s.cfg.Location)
	start := time.Now()
	stats, err := s.stats.AttendanceBetween(ctx, from, to)
	s.metrics.ObserveDBQuery("today_attendance", time.Since(start))
	return stats, err
}

// Stats runs the four statistics concurrently. Any failure fails the whole call.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.ActiveChildrenCount(gctx)
		stats.ChildrenCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.ActiveProgramsCount(gctx)
		stats.ActivePrograms = count
		return err
	})
	g.Go(func() error {
		income, err := s.MonthlyIncome(gctx)
		stats.MonthlyIncome = income
		return err
	})
	g.Go(func() error {
		attendance, err := s.TodayAttendanceStats(gctx)
		stats.TodayAttendance = attendance
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute dashboard statistics")
	}
	return &stats, nil
}

// Get returns the dashboard payload and reports whether it was served from cache.
func (s *DashboardService) Get(ctx context.Context) (*models.Dashboard, bool, error) {
	key := s.cacheKey()
	if cached, hit := s.tryCache(ctx, key); hit {
		return cached, true, nil
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, false, err
	}
	active, err := s.programs.ListActive(ctx, activeProgramsLimit)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active programs")
	}
	upcoming, err := s.programs.ListUpcoming(ctx, upcomingProgramsLimit)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load upcoming programs")
	}

	dashboard := &models.Dashboard{
		Stats:            *stats,
		ActivePrograms:   active,
		UpcomingPrograms: upcoming,
	}
	s.persistCache(ctx, key, dashboard)
	return dashboard, false, nil
}

// cacheKey is scoped to the local day so attendance figures never leak across midnight.
func (s *DashboardService) cacheKey() string {
	return "dash:overview:" + s.now().In(s.cfg.Location).Format(models.DateLayout)
}

func (s *DashboardService) tryCache(ctx context.Context, key string) (*models.Dashboard, bool) {
	if s.cache == nil {
		return nil, false
	}
	var cached models.Dashboard
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil || !hit {
		return nil, false
	}
	return &cached, true
}

func (s *DashboardService) persistCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
