package report

import (
	"context"
	"time"
)

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Range(start, end string) (Range, error) {
	return ParseRange(start, end, s.now())
}

func (s *Service) Overview(ctx context.Context, r Range) (*Overview, error) {
	types, err := s.store.AppointmentsByType(ctx, r)
	if err != nil {
		return nil, err
	}
	statuses, err := s.store.AppointmentsByStatus(ctx, r)
	if err != nil {
		return nil, err
	}
	days, err := s.store.AppointmentsByWeekday(ctx, r)
	if err != nil {
		return nil, err
	}
	baseline, monthly, err := s.store.PatientSignups(ctx, r)
	if err != nil {
		return nil, err
	}
	totals, err := s.store.Totals(ctx, r)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Start:              r.Start.Format(dateLayout),
		End:                r.End.Format(dateLayout),
		AppointmentsByType: byType(types),
		AppointmentStatus:  byStatus(statuses),
		WeeklyAppointments: weekSeries(days),
		PatientGrowth:      growthSeries(r, baseline, monthly),
		Totals:             totals,
	}, nil
}
