package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/calendar"
)

type EventServiceImpl struct {
	calendar.EventRepository
	loc *time.Location
	now func() time.Time
}

func NewEventService(repo calendar.EventRepository, loc *time.Location) calendar.EventService {
	if loc == nil {
		loc = time.UTC
	}
	return &EventServiceImpl{
		EventRepository: repo,
		loc:             loc,
		now:             time.Now,
	}
}

// Create implements calendar.EventService.
func (s *EventServiceImpl) Create(ctx context.Context, req calendar.CreateEventRequest) (calendar.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.EventResponse{}, err
	}

	start, end := req.Span()
	created, err := s.EventRepository.Create(ctx, calendar.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Start:       start,
		End:         end,
		AllDay:      req.AllDay,
		Location:    req.Location,
		Category:    calendar.Category(req.Category),
		ClientName:  trimmed(req.ClientName),
	})
	if err != nil {
		slog.Error("Failed to create event", "error", err)
		return calendar.EventResponse{}, fmt.Errorf("failed to create event: %w", err)
	}
	return calendar.ToResponse(created), nil
}

// GetByID implements calendar.EventService.
func (s *EventServiceImpl) GetByID(ctx context.Context, id string) (calendar.EventResponse, error) {
	e, err := s.EventRepository.GetByID(ctx, id)
	if err != nil {
		return calendar.EventResponse{}, err
	}
	return calendar.ToResponse(e), nil
}

// List implements calendar.EventService.
func (s *EventServiceImpl) List(ctx context.Context, query calendar.ListEventsQuery) ([]calendar.EventResponse, error) {
	filter, err := query.Filter(s.loc)
	if err != nil {
		return nil, err
	}

	events, err := s.EventRepository.ListOverlapping(ctx, filter)
	if err != nil {
		slog.Error("Failed to list events", "error", err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	resp := make([]calendar.EventResponse, 0, len(events))
	for _, e := range events {
		if !s.within(e, filter) {
			continue
		}
		resp = append(resp, calendar.ToResponse(e))
	}
	return resp, nil
}

// within trims the repository's coarse overlap match to the exact day range.
func (s *EventServiceImpl) within(e calendar.Event, filter calendar.EventFilter) bool {
	from, to := DaySpan(e, s.loc)
	if filter.From != nil && to.Before(dateOf(*filter.From)) {
		return false
	}
	if filter.To != nil && !from.Before(dateOf(*filter.To)) {
		return false
	}
	return true
}

// Update implements calendar.EventService.
func (s *EventServiceImpl) Update(ctx context.Context, id string, req calendar.UpdateEventRequest) (calendar.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.EventResponse{}, err
	}

	e, err := s.EventRepository.GetByID(ctx, id)
	if err != nil {
		return calendar.EventResponse{}, err
	}

	if req.AllDay != nil && *req.AllDay != e.AllDay && req.Start == nil {
		e.Start, e.End = s.convertSpan(e, *req.AllDay)
	}
	if req.AllDay != nil {
		e.AllDay = *req.AllDay
	}
	if req.Start != nil {
		if errs := calendar.ValidateSpan(*req.Start, *req.End, e.AllDay); len(errs) > 0 {
			return calendar.EventResponse{}, errs
		}
		e.Start, _ = calendar.ParseEventTime(*req.Start, e.AllDay)
		e.End, _ = calendar.ParseEventTime(*req.End, e.AllDay)
	}
	if req.Title != nil {
		e.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Category != nil {
		e.Category = calendar.Category(*req.Category)
	}
	if req.ClientName != nil {
		e.ClientName = trimmed(req.ClientName)
	}

	updated, err := s.EventRepository.Update(ctx, e)
	if err != nil {
		return calendar.EventResponse{}, err
	}
	return calendar.ToResponse(updated), nil
}

// convertSpan keeps the covered days when an event switches between all-day and timed.
func (s *EventServiceImpl) convertSpan(e calendar.Event, toAllDay bool) (time.Time, time.Time) {
	from, to := DaySpan(e, s.loc)
	if toAllDay {
		return from, to
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(to.Year(), to.Month(), to.Day()+1, 0, 0, 0, 0, s.loc)
	return start, end
}

// Delete implements calendar.EventService.
func (s *EventServiceImpl) Delete(ctx context.Context, id string) error {
	return s.EventRepository.Delete(ctx, id)
}

// SetDone implements calendar.EventService.
func (s *EventServiceImpl) SetDone(ctx context.Context, id string, req calendar.SetDoneRequest) error {
	return s.EventRepository.SetDone(ctx, id, req.IsDone)
}

// MonthGrid implements calendar.EventService.
func (s *EventServiceImpl) MonthGrid(ctx context.Context, query calendar.GridQuery) (calendar.Grid, error) {
	if err := query.Validate(); err != nil {
		return calendar.Grid{}, err
	}

	month := s.now().In(s.loc)
	if query.Month != "" {
		month, _ = time.Parse("2006-01", query.Month)
	}

	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)
	filter := calendar.EventFilter{From: &from, To: &to}
	if name := strings.TrimSpace(query.ClientName); name != "" {
		filter.ClientName = &name
	}

	events, err := s.EventRepository.ListOverlapping(ctx, filter)
	if err != nil {
		slog.Error("Failed to load events for month grid", "month", from.Format("2006-01"), "error", err)
		return calendar.Grid{}, fmt.Errorf("failed to load events: %w", err)
	}

	return BuildMonthGrid(month.Year(), month.Month(), events, s.loc), nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
