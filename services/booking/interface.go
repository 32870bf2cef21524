package booking

import (
	"context"
	"time"

	"counselconnect/config"
	"counselconnect/models"
	"counselconnect/services/calendar"

	"go.uber.org/zap"
)

// BookingService is the availability/booking engine exposed to the routing
// and chat layers.
type BookingService interface {
	// CheckAvailableSlots lists offerable 30-minute slots for the counselor
	// in the named period of the date, alongside the spans already taken.
	CheckAvailableSlots(ctx context.Context, date time.Time, timeRangeLabel, counselorID string) (*models.AvailabilityResult, error)
	// BookAppointment validates the request, re-checks the slot against a
	// fresh busy snapshot, writes the calendar event, and requests
	// notification. Never confirmed unless the calendar write succeeds.
	BookAppointment(ctx context.Context, req models.BookingRequest) (*models.BookingConfirmation, error)
}

// NotificationDispatcher queues post-booking side effects. Failures here
// are reported but never undo the booking.
type NotificationDispatcher interface {
	EnqueueMail(mail models.MailPayload) error
	EnqueueSMS(sms models.SMSPayload) error
	EnqueueReminder(reminder models.ReminderPayload, startsAt time.Time) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Calendar     calendar.CalendarService
	Registry     *config.CounselorRegistry
	Reservations ReservationStore
	Dispatcher   NotificationDispatcher
	Location     *time.Location
	Timezone     string
	Logger       *zap.Logger
}
