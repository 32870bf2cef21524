package calendar

import (
	"context"
	"fmt"
	"time"

	"counselconnect/models"
)

// CalendarService is the external calendar collaborator contract. The
// calendar is the system of record for appointments; nothing is persisted
// on this side.
type CalendarService interface {
	// ListBusyIntervals returns the counselor's committed spans between
	// timeMin and timeMax, ordered by start time.
	ListBusyIntervals(ctx context.Context, counselorID string, timeMin, timeMax time.Time) ([]models.BusyInterval, error)
	// CreateEvent writes the appointment and returns the new event ID.
	CreateEvent(ctx context.Context, counselorID string, event models.AppointmentEvent) (string, error)
}

// ReadError signals a failed busy-interval fetch. Not retried here; the
// caller surfaces it and leaves its own state unchanged.
type ReadError struct {
	CounselorID string
	Cause       error
}

func (e ReadError) Error() string {
	return fmt.Sprintf("calendar read failed for counselor %s: %v", e.CounselorID, e.Cause)
}

func (e ReadError) Unwrap() error { return e.Cause }

// WriteError signals a failed event creation, transport or auth alike.
type WriteError struct {
	CounselorID string
	Cause       error
}

func (e WriteError) Error() string {
	return fmt.Sprintf("calendar write failed for counselor %s: %v", e.CounselorID, e.Cause)
}

func (e WriteError) Unwrap() error { return e.Cause }
