package calendar

import (
	"context"
	"time"

	"counselconnect/models"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarService talks to Google Calendar v3. One instance serves
// all counselors; per-counselor auth comes from the credential provider on
// every call.
type GoogleCalendarService struct {
	Creds  CredentialProvider
	Logger *zap.Logger
}

func NewGoogleCalendarService(creds CredentialProvider, logger *zap.Logger) *GoogleCalendarService {
	return &GoogleCalendarService{Creds: creds, Logger: logger}
}

func (s *GoogleCalendarService) clientFor(ctx context.Context, counselorID string) (*gcal.Service, string, error) {
	ts, err := s.Creds.TokenSource(ctx, counselorID)
	if err != nil {
		return nil, "", err
	}
	calendarID, err := s.Creds.CalendarID(counselorID)
	if err != nil {
		return nil, "", err
	}
	svc, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, "", err
	}
	return svc, calendarID, nil
}

// ListBusyIntervals fetches the counselor's events in [timeMin, timeMax]
// and reduces them to busy spans. Events without concrete start/end
// timestamps (all-day entries) are skipped.
func (s *GoogleCalendarService) ListBusyIntervals(ctx context.Context, counselorID string, timeMin, timeMax time.Time) ([]models.BusyInterval, error) {
	svc, calendarID, err := s.clientFor(ctx, counselorID)
	if err != nil {
		return nil, ReadError{CounselorID: counselorID, Cause: err}
	}

	events, err := svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, ReadError{CounselorID: counselorID, Cause: err}
	}

	var busy []models.BusyInterval
	for _, item := range events.Items {
		if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			s.Logger.Warn("skipping event with unparseable start",
				zap.String("counselorId", counselorID), zap.String("eventId", item.Id))
			continue
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			s.Logger.Warn("skipping event with unparseable end",
				zap.String("counselorId", counselorID), zap.String("eventId", item.Id))
			continue
		}
		busy = append(busy, models.BusyInterval{Start: start, End: end})
	}
	return busy, nil
}

// CreateEvent writes the appointment to the counselor's calendar.
func (s *GoogleCalendarService) CreateEvent(ctx context.Context, counselorID string, event models.AppointmentEvent) (string, error) {
	svc, calendarID, err := s.clientFor(ctx, counselorID)
	if err != nil {
		return "", WriteError{CounselorID: counselorID, Cause: err}
	}

	inserted, err := svc.Events.Insert(calendarID, &gcal.Event{
		Summary: event.Summary,
		Start: &gcal.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", WriteError{CounselorID: counselorID, Cause: err}
	}

	s.Logger.Info("calendar event created",
		zap.String("counselorId", counselorID), zap.String("eventId", inserted.Id))
	return inserted.Id, nil
}
