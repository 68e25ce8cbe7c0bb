package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dentaldesk/dentaldesk/internal/platform/auth"
	"github.com/dentaldesk/dentaldesk/internal/platform/middleware"
)

type fakeStore struct {
	types    []Bucket
	statuses []Bucket
	days     map[int]int
	baseline int
	monthly  map[string]int
	totals   Totals
	err      error
	ranges   []Range
}

func (f *fakeStore) AppointmentsByType(_ context.Context, r Range) ([]Bucket, error) {
	f.ranges = append(f.ranges, r)
	return f.types, f.err
}

func (f *fakeStore) AppointmentsByStatus(_ context.Context, _ Range) ([]Bucket, error) {
	return f.statuses, nil
}

func (f *fakeStore) AppointmentsByWeekday(_ context.Context, _ Range) (map[int]int, error) {
	return f.days, nil
}

func (f *fakeStore) PatientSignups(_ context.Context, _ Range) (int, map[string]int, error) {
	return f.baseline, f.monthly, nil
}

func (f *fakeStore) Totals(_ context.Context, _ Range) (Totals, error) {
	return f.totals, nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		types:    []Bucket{{"cleaning", 3}, {"checkup", 1}},
		statuses: []Bucket{{"scheduled", 2}, {"completed", 1}, {"cancelled", 1}},
		days:     map[int]int{2: 3},
		baseline: 10,
		monthly:  map[string]int{"2025-01": 2},
		totals:   Totals{Appointments: 4, CancelledAppointments: 1, Patients: 12, ActivePatients: 11, ActiveDentists: 2},
	}
}

func TestService_Overview(t *testing.T) {
	svc := NewService(newFakeStore())
	r := Range{Start: day("2025-01-01"), End: day("2025-01-31")}

	o, err := svc.Overview(context.Background(), r)
	if err != nil {
		t.Fatalf("Overview() error: %v", err)
	}
	if o.Start != "2025-01-01" || o.End != "2025-01-31" {
		t.Errorf("unexpected bounds %s..%s", o.Start, o.End)
	}
	if o.AppointmentsByType[0].Percentage != 75 || o.AppointmentsByType[1].Percentage != 25 {
		t.Errorf("unexpected type percentages %+v", o.AppointmentsByType)
	}
	counted := 0
	for _, s := range o.AppointmentStatus {
		counted += s.Count
	}
	if counted != o.Totals.Appointments {
		t.Errorf("expected status counts to match total %d, got %d", o.Totals.Appointments, counted)
	}
	if len(o.PatientGrowth) != 1 || o.PatientGrowth[0].TotalPatients != 12 {
		t.Errorf("unexpected growth %+v", o.PatientGrowth)
	}
	if o.WeeklyAppointments[1].Count != 3 {
		t.Errorf("expected Tuesday count 3, got %+v", o.WeeklyAppointments)
	}
}

func TestService_OverviewError(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("db down")
	svc := NewService(store)

	if _, err := svc.Overview(context.Background(), Range{Start: day("2025-01-01"), End: day("2025-01-02")}); err == nil {
		t.Error("expected store error")
	}
}

func TestHandler_Overview(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) }

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(zerolog.Nop())
	e.Use(auth.DevAuthMiddleware())
	NewHandler(svc).RegisterRoutes(e.Group("/api/v1"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/overview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Data Overview `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Data.Start != "2025-01-01" || out.Data.End != "2025-06-10" {
		t.Errorf("expected default range, got %s..%s", out.Data.Start, out.Data.End)
	}
	if len(out.Data.PatientGrowth) != 6 {
		t.Errorf("expected six months of growth, got %d", len(out.Data.PatientGrowth))
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/overview?start=2025-02-01&end=2025-01-01", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for inverted range, got %d", rec.Code)
	}
}
