package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/ramp-cyb/workhours/internal/model"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Upsert(_ context.Context, employee *model.Employee) error {
	if existing, ok := m.employees[employee.EmployeeID]; ok {
		if employee.Name != "" {
			existing.Name = employee.Name
		}
		return nil
	}
	cp := *employee
	m.employees[employee.EmployeeID] = &cp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, employeeID string) (*model.Employee, error) {
	if e, ok := m.employees[employeeID]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock SwipeRepository ──

type mockSwipeRepo struct {
	// key: "employeeID|YYYY-MM-DD"
	days map[string][]model.Swipe
}

func newMockSwipeRepo() *mockSwipeRepo {
	return &mockSwipeRepo{days: make(map[string][]model.Swipe)}
}

func swipeDayKey(employeeID string, day time.Time) string {
	return fmt.Sprintf("%s|%s", employeeID, day.Format(time.DateOnly))
}

func (m *mockSwipeRepo) ReplaceDay(_ context.Context, employeeID string, day time.Time, swipes []model.Swipe) error {
	key := swipeDayKey(employeeID, day)
	if len(swipes) == 0 {
		delete(m.days, key)
		return nil
	}
	m.days[key] = append([]model.Swipe(nil), swipes...)
	return nil
}

func (m *mockSwipeRepo) ListByEmployeeAndDate(_ context.Context, employeeID string, day time.Time) ([]model.Swipe, error) {
	swipes := append([]model.Swipe(nil), m.days[swipeDayKey(employeeID, day)]...)
	sort.SliceStable(swipes, func(i, j int) bool {
		return swipes[i].SwipeTime.Before(swipes[j].SwipeTime)
	})
	return swipes, nil
}

func (m *mockSwipeRepo) CountByEmployeeAndDate(_ context.Context, employeeID string, day time.Time) (int64, error) {
	return int64(len(m.days[swipeDayKey(employeeID, day)])), nil
}

// ── Mock MonthlyAttendanceRepository ──

type mockMonthlyAttendanceRepo struct {
	// key: "employeeID|YYYY-MM"
	months map[string][]model.MonthlyAttendanceEntry
}

func newMockMonthlyAttendanceRepo() *mockMonthlyAttendanceRepo {
	return &mockMonthlyAttendanceRepo{months: make(map[string][]model.MonthlyAttendanceEntry)}
}

func monthKeyOf(employeeID string, year int, month time.Month) string {
	return fmt.Sprintf("%s|%04d-%02d", employeeID, year, month)
}

func (m *mockMonthlyAttendanceRepo) ReplaceMonth(_ context.Context, employeeID string, year int, month time.Month, entries []model.MonthlyAttendanceEntry) error {
	key := monthKeyOf(employeeID, year, month)
	if len(entries) == 0 {
		delete(m.months, key)
		return nil
	}
	m.months[key] = append([]model.MonthlyAttendanceEntry(nil), entries...)
	return nil
}

func (m *mockMonthlyAttendanceRepo) ListByEmployeeAndMonth(_ context.Context, employeeID string, year int, month time.Month) ([]model.MonthlyAttendanceEntry, error) {
	entries := append([]model.MonthlyAttendanceEntry(nil), m.months[monthKeyOf(employeeID, year, month)]...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AttendanceDate.Before(entries[j].AttendanceDate)
	})
	return entries, nil
}

func (m *mockMonthlyAttendanceRepo) EarliestDate(_ context.Context, employeeID string) (time.Time, error) {
	var earliest time.Time
	found := false
	for _, entries := range m.months {
		for _, e := range entries {
			if e.EmployeeID != employeeID {
				continue
			}
			if !found || e.AttendanceDate.Before(earliest) {
				earliest = e.AttendanceDate
				found = true
			}
		}
	}
	if !found {
		return time.Time{}, gorm.ErrRecordNotFound
	}
	return earliest, nil
}

// ── Mock ImportBatchRepository ──

type mockImportBatchRepo struct {
	batches []model.ImportBatch
}

func newMockImportBatchRepo() *mockImportBatchRepo {
	return &mockImportBatchRepo{}
}

func (m *mockImportBatchRepo) Create(_ context.Context, batch *model.ImportBatch) error {
	m.batches = append(m.batches, *batch)
	return nil
}
