package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

const (
	childID1      = "11111111-1111-4111-8111-111111111111"
	childID2      = "22222222-2222-4222-8222-222222222222"
	parentID1     = "33333333-3333-4333-8333-333333333333"
	programID1    = "44444444-4444-4444-8444-444444444444"
	enrollmentID1 = "55555555-5555-4555-8555-555555555555"
)

func existsIn(ids ...string) existenceChecker {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(_ context.Context, id string) (bool, error) {
		return set[id], nil
	}
}

type recordingInvalidator struct {
	patterns []string
	err      error
}

func (r *recordingInvalidator) Invalidate(_ context.Context, pattern string) error {
	r.patterns = append(r.patterns, pattern)
	return r.err
}

type fakeProgramRepo struct {
	items     map[string]*models.Program
	lastList  models.ProgramFilter
	deleteErr error
}

func newFakeProgramRepo(programs ...models.Program) *fakeProgramRepo {
	repo := &fakeProgramRepo{items: map[string]*models.Program{}}
	for i := range programs {
		p := programs[i]
		repo.items[p.ID] = &p
	}
	return repo
}

func (f *fakeProgramRepo) FindByID(_ context.Context, id string) (*models.Program, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProgramRepo) List(_ context.Context, filter models.ProgramFilter) ([]models.Program, error) {
	f.lastList = filter
	out := make([]models.Program, 0, len(f.items))
	for _, p := range f.items {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProgramRepo) NamesByIDs(_ context.Context, ids []string) (map[string]string, error) {
	names := map[string]string{}
	for _, id := range ids {
		if p, ok := f.items[id]; ok {
			names[id] = p.Name
		}
	}
	return names, nil
}

func (f *fakeProgramRepo) Create(_ context.Context, program *models.Program) error {
	if program.ID == "" {
		program.ID = fmt.Sprintf("program-%d", len(f.items)+1)
	}
	clone := *program
	f.items[program.ID] = &clone
	return nil
}

func (f *fakeProgramRepo) Update(_ context.Context, program *models.Program) error {
	if _, ok := f.items[program.ID]; !ok {
		return sql.ErrNoRows
	}
	clone := *program
	f.items[program.ID] = &clone
	return nil
}

func (f *fakeProgramRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

type fakeChildRepo struct {
	items map[string]*models.Child
}

func newFakeChildRepo(children ...models.Child) *fakeChildRepo {
	repo := &fakeChildRepo{items: map[string]*models.Child{}}
	for i := range children {
		c := children[i]
		repo.items[c.ID] = &c
	}
	return repo
}

func (f *fakeChildRepo) FindByID(_ context.Context, id string) (*models.Child, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (f *fakeChildRepo) List(_ context.Context, filter models.ChildFilter) ([]models.Child, error) {
	out := make([]models.Child, 0, len(f.items))
	for _, c := range f.items {
		if filter.ParentID != "" && c.ParentID != filter.ParentID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeChildRepo) NamesByIDs(_ context.Context, ids []string) (map[string]string, error) {
	names := map[string]string{}
	for _, id := range ids {
		if c, ok := f.items[id]; ok {
			names[id] = c.Name
		}
	}
	return names, nil
}

func (f *fakeChildRepo) Create(_ context.Context, child *models.Child) error {
	if child.ID == "" {
		child.ID = fmt.Sprintf("child-%d", len(f.items)+1)
	}
	clone := *child
	f.items[child.ID] = &clone
	return nil
}

func (f *fakeChildRepo) Update(_ context.Context, child *models.Child) error {
	clone := *child
	f.items[child.ID] = &clone
	return nil
}

func (f *fakeChildRepo) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

type fakeParentRepo struct {
	items map[string]*models.Parent
	err   error
}

func (f *fakeParentRepo) FindByID(_ context.Context, id string) (*models.Parent, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (f *fakeParentRepo) List(_ context.Context, _ models.ParentFilter) ([]models.Parent, error) {
	out := make([]models.Parent, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, *p)
	}
	return out, nil
}

type fakeEnrollmentRepo struct {
	items  []models.Enrollment
	labels []models.EnrollmentLabel
}

func (f *fakeEnrollmentRepo) FindByID(_ context.Context, id string) (*models.Enrollment, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			clone := f.items[i]
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEnrollmentRepo) List(_ context.Context, _ models.EnrollmentFilter) ([]models.Enrollment, error) {
	return append([]models.Enrollment(nil), f.items...), nil
}

func (f *fakeEnrollmentRepo) LabelsByIDs(_ context.Context, _ []string) ([]models.EnrollmentLabel, error) {
	return f.labels, nil
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = fmt.Sprintf("enrollment-%d", len(f.items)+1)
	}
	f.items = append(f.items, *enrollment)
	return nil
}

func (f *fakeEnrollmentRepo) Update(_ context.Context, enrollment *models.Enrollment) error {
	for i := range f.items {
		if f.items[i].ID == enrollment.ID {
			f.items[i] = *enrollment
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeEnrollmentRepo) Delete(_ context.Context, _ string) error { return nil }

type fakePaymentRepo struct {
	items []models.Payment
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id string) (*models.Payment, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			clone := f.items[i]
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakePaymentRepo) List(_ context.Context, _ models.PaymentFilter) ([]models.Payment, error) {
	return append([]models.Payment(nil), f.items...), nil
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = fmt.Sprintf("payment-%d", len(f.items)+1)
	}
	f.items = append(f.items, *payment)
	return nil
}

func (f *fakePaymentRepo) Update(_ context.Context, payment *models.Payment) error {
	for i := range f.items {
		if f.items[i].ID == payment.ID {
			f.items[i] = *payment
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakePaymentRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeAttendanceRepo struct {
	mu          sync.Mutex
	items       []models.Attendance
	lastFilter  models.AttendanceFilter
	lastStart   time.Time
	lastEnd     time.Time
	createCalls int
	updateCalls int
}

func (f *fakeAttendanceRepo) FindByID(_ context.Context, id string) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			clone := f.items[i]
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter models.AttendanceFilter, dayStart, dayEnd time.Time) ([]models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter, f.lastStart, f.lastEnd = filter, dayStart, dayEnd
	return append([]models.Attendance(nil), f.items...), nil
}

func (f *fakeAttendanceRepo) FindForChildBetween(_ context.Context, childID string, from, to time.Time) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		r := f.items[i]
		if r.ChildID == childID && !r.Date.Before(from) && r.Date.Before(to) {
			return &r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record *models.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if record.ID == "" {
		record.ID = fmt.Sprintf("attendance-%d", len(f.items)+1)
	}
	f.items = append(f.items, *record)
	return nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record *models.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	for i := range f.items {
		if f.items[i].ID == record.ID {
			f.items[i] = *record
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeCommunicationRepo struct {
	mu       sync.Mutex
	items    map[string]*models.Communication
	statuses map[string]models.CommunicationStatus
}

func newFakeCommunicationRepo() *fakeCommunicationRepo {
	return &fakeCommunicationRepo{items: map[string]*models.Communication{}, statuses: map[string]models.CommunicationStatus{}}
}

func (f *fakeCommunicationRepo) FindByID(_ context.Context, id string) (*models.Communication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCommunicationRepo) List(_ context.Context, _ models.CommunicationFilter) ([]models.Communication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Communication, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCommunicationRepo) Create(_ context.Context, communication *models.Communication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if communication.ID == "" {
		communication.ID = fmt.Sprintf("communication-%d", len(f.items)+1)
	}
	clone := *communication
	f.items[communication.ID] = &clone
	return nil
}

func (f *fakeCommunicationRepo) Update(_ context.Context, communication *models.Communication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *communication
	f.items[communication.ID] = &clone
	return nil
}

func (f *fakeCommunicationRepo) UpdateStatus(_ context.Context, id string, status models.CommunicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[id] = status
	if c, ok := f.items[id]; ok {
		c.Status = status
	}
	return nil
}

func (f *fakeCommunicationRepo) status(id string) models.CommunicationStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statuses[id]
}

func (f *fakeCommunicationRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) List(_ context.Context, _ models.ListParams) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Username, username) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(f.users), nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string, _ time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

type fakeStatsRepo struct {
	children   int
	programs   int
	income     decimal.Decimal
	attendance models.AttendanceStats
	err        error

	mu        sync.Mutex
	incomeArg [2]time.Time
	dayArg    [2]time.Time
	calls     int
}

func (f *fakeStatsRepo) ActiveChildrenCount(_ context.Context) (int, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.children, nil
}

func (f *fakeStatsRepo) ActiveProgramsCount(_ context.Context) (int, error) {
	return f.programs, nil
}

func (f *fakeStatsRepo) CompletedPaymentsTotal(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	f.mu.Lock()
	f.incomeArg = [2]time.Time{from, to}
	f.mu.Unlock()
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.income, nil
}

func (f *fakeStatsRepo) AttendanceBetween(_ context.Context, from, to time.Time) (models.AttendanceStats, error) {
	f.mu.Lock()
	f.dayArg = [2]time.Time{from, to}
	f.mu.Unlock()
	return f.attendance, nil
}

type memoryCacheRepo struct {
	mu    sync.Mutex
	store map[string]interface{}
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{store: map[string]interface{}{}}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *models.Dashboard:
		*d = *(value.(*models.Dashboard))
	default:
		return fmt.Errorf("unsupported dest %T", dest)
	}
	return nil
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.store {
		if strings.HasPrefix(key, prefix) {
			delete(m.store, key)
		}
	}
	return nil
}

