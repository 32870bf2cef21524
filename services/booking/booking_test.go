package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"counselconnect/config"
	"counselconnect/models"
	"counselconnect/services/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCalendar struct {
	busy      []models.BusyInterval
	listErr   error
	listCalls int

	created   []models.AppointmentEvent
	createErr error
	eventID   string
	// when set, created events are appended to busy, so the next fresh
	// read sees them.
	feedbackBusy bool
}

func (c *stubCalendar) ListBusyIntervals(_ context.Context, counselorID string, _, _ time.Time) ([]models.BusyInterval, error) {
	c.listCalls++
	if c.listErr != nil {
		return nil, calendar.ReadError{CounselorID: counselorID, Cause: c.listErr}
	}
	out := make([]models.BusyInterval, len(c.busy))
	copy(out, c.busy)
	return out, nil
}

func (c *stubCalendar) CreateEvent(_ context.Context, counselorID string, event models.AppointmentEvent) (string, error) {
	if c.createErr != nil {
		return "", calendar.WriteError{CounselorID: counselorID, Cause: c.createErr}
	}
	c.created = append(c.created, event)
	if c.feedbackBusy {
		c.busy = append(c.busy, models.BusyInterval{Start: event.Start, End: event.End})
	}
	if c.eventID == "" {
		return "evt-1", nil
	}
	return c.eventID, nil
}

type stubDispatcher struct {
	mails     []models.MailPayload
	sms       []models.SMSPayload
	reminders []models.ReminderPayload
	mailErr   error
}

func (d *stubDispatcher) EnqueueMail(mail models.MailPayload) error {
	if d.mailErr != nil {
		return d.mailErr
	}
	d.mails = append(d.mails, mail)
	return nil
}

func (d *stubDispatcher) EnqueueSMS(sms models.SMSPayload) error {
	d.sms = append(d.sms, sms)
	return nil
}

func (d *stubDispatcher) EnqueueReminder(reminder models.ReminderPayload, _ time.Time) error {
	d.reminders = append(d.reminders, reminder)
	return nil
}

type stubReservations struct {
	deny     bool
	err      error
	reserved int
	released int
}

func (r *stubReservations) Reserve(context.Context, string, time.Time) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if r.deny {
		return false, nil
	}
	r.reserved++
	return true, nil
}

func (r *stubReservations) Release(context.Context, string, time.Time) {
	r.released++
}

func newService(cal *stubCalendar, disp *stubDispatcher, resv *stubReservations) *DefaultBookingService {
	registry := config.NewCounselorRegistry([]config.Counselor{
		{ID: "counselor1", Email: "counselor1@example.com", Phone: "+15550100"},
		{ID: "counselor2", Email: "counselor2@example.com"},
	})
	return &DefaultBookingService{
		Calendar:     cal,
		Registry:     registry,
		Reservations: resv,
		Dispatcher:   disp,
		Location:     time.UTC,
		Timezone:     "UTC",
		Logger:       zap.NewNop(),
	}
}

func day(hour, min int) time.Time {
	return time.Date(2026, time.March, 9, hour, min, 0, 0, time.UTC)
}

func TestCheckAvailableSlots(t *testing.T) {
	cal := &stubCalendar{busy: []models.BusyInterval{{Start: day(10, 0), End: day(10, 30)}}}
	svc := newService(cal, &stubDispatcher{}, &stubReservations{})

	result, err := svc.CheckAvailableSlots(context.Background(), day(0, 0), "morning", "counselor1")
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, result.AvailableSlots)
	assert.Equal(t, []string{"10:00 - 10:30"}, result.BookedSlots)
}

func TestCheckAvailableSlotsIsIdempotent(t *testing.T) {
	cal := &stubCalendar{busy: []models.BusyInterval{{Start: day(13, 0), End: day(14, 0)}}}
	svc := newService(cal, &stubDispatcher{}, &stubReservations{})

	first, err := svc.CheckAvailableSlots(context.Background(), day(0, 0), "afternoon", "counselor1")
	require.NoError(t, err)
	second, err := svc.CheckAvailableSlots(context.Background(), day(0, 0), "afternoon", "counselor1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCheckAvailableSlotsRejectsLocallyBeforeCalendar(t *testing.T) {
	cal := &stubCalendar{}
	svc := newService(cal, &stubDispatcher{}, &stubReservations{})

	_, err := svc.CheckAvailableSlots(context.Background(), day(0, 0), "midnight", "counselor1")
	assert.IsType(t, UnknownTimeRangeLabelError{}, err)

	_, err = svc.CheckAvailableSlots(context.Background(), day(0, 0), "morning", "counselor9")
	assert.IsType(t, UnknownCounselorError{}, err)

	// Neither rejection may have touched the calendar.
	assert.Zero(t, cal.listCalls)
}

func TestCheckAvailableSlotsSurfacesReadError(t *testing.T) {
	cal := &stubCalendar{listErr: errors.New("token expired")}
	svc := newService(cal, &stubDispatcher{}, &stubReservations{})

	_, err := svc.CheckAvailableSlots(context.Background(), day(0, 0), "morning", "counselor1")

	var readErr calendar.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "counselor1", readErr.CounselorID)
}

func TestBookAppointment(t *testing.T) {
	cal := &stubCalendar{eventID: "evt-42", feedbackBusy: true}
	disp := &stubDispatcher{}
	resv := &stubReservations{}
	svc := newService(cal, disp, resv)

	req := models.BookingRequest{
		StartTime:   day(9, 30),
		EndTime:     day(10, 30),
		CounselorID: "counselor1",
		UserEmail:   "a@b.com",
	}
	conf, err := svc.BookAppointment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "evt-42", conf.EventID)
	assert.Equal(t, "https://meet.google.com/evt-42", conf.MeetLink)

	require.Len(t, cal.created, 1)
	assert.Equal(t, "Appointment", cal.created[0].Summary)
	assert.Equal(t, "UTC", cal.created[0].Timezone)

	// Confirmation mail goes to both parties; the counselor also gets a text.
	require.Len(t, disp.mails, 1)
	assert.Equal(t, []string{"a@b.com", "counselor1@example.com"}, disp.mails[0].To)
	assert.Contains(t, disp.mails[0].Body, "09:30 to 10:30")
	assert.Contains(t, disp.mails[0].Body, "https://meet.google.com/evt-42")
	assert.Len(t, disp.sms, 1)
	assert.Len(t, disp.reminders, 1)

	assert.Equal(t, 1, resv.reserved)
	assert.Equal(t, 1, resv.released)
}

func TestBookAppointmentTwiceLosesSecondTime(t *testing.T) {
	cal := &stubCalendar{feedbackBusy: true}
	svc := newService(cal, &stubDispatcher{}, &stubReservations{})

	req := models.BookingRequest{
		StartTime:   day(11, 0),
		EndTime:     day(12, 0),
		CounselorID: "counselor1",
		UserEmail:   "a@b.com",
	}
	_, err := svc.BookAppointment(context.Background(), req)
	require.NoError(t, err)

	// The slot is now busy on the fresh read; the repeat must lose.
	_, err = svc.BookAppointment(context.Background(), req)
	var gone SlotNoLongerAvailableError
	require.ErrorAs(t, err, &gone)
	assert.Equal(t, "counselor1", gone.CounselorID)
	assert.Len(t, cal.created, 1)
}

func TestBookAppointmentRejectsWhenReserved(t *testing.T) {
	cal := &stubCalendar{}
	svc := newService(cal, &stubDispatcher{}, &stubReservations{deny: true})

	_, err := svc.BookAppointment(context.Background(), models.BookingRequest{
		StartTime:   day(9, 0),
		EndTime:     day(10, 0),
		CounselorID: "counselor1",
		UserEmail:   "a@b.com",
	})

	var gone SlotNoLongerAvailableError
	require.ErrorAs(t, err, &gone)
	assert.Empty(t, cal.created)
}

func TestBookAppointmentProceedsWhenReservationStoreDown(t *testing.T) {
	cal := &stubCalendar{}
	svc := newService(cal, &stubDispatcher{}, &stubReservations{err: errors.New("redis down")})

	_, err := svc.BookAppointment(context.Background(), models.BookingRequest{
		StartTime:   day(9, 0),
		EndTime:     day(10, 0),
		CounselorID: "counselor1",
		UserEmail:   "a@b.com",
	})

	require.NoError(t, err)
	assert.Len(t, cal.created, 1)
}

func TestBookAppointmentWriteErrorIsNotConfirmed(t *testing.T) {
	cal := &stubCalendar{createErr: errors.New("503")}
	disp := &stubDispatcher{}
	svc := newService(cal, disp, &stubReservations{})

	_, err := svc.BookAppointment(context.Background(), models.BookingRequest{
		StartTime:   day(9, 0),
		EndTime:     day(10, 0),
		CounselorID: "counselor1",
		UserEmail:   "a@b.com",
	})

	var writeErr calendar.WriteError
	require.ErrorAs(t, err, &writeErr)
	// No notification may be requested for an unconfirmed booking.
	assert.Empty(t, disp.mails)
}

func TestBookAppointmentStandsWhenMailDispatchFails(t *testing.T) {
	cal := &stubCalendar{}
	disp := &stubDispatcher{mailErr: errors.New("queue full")}
	svc := newService(cal, disp, &stubReservations{})

	conf, err := svc.BookAppointment(context.Background(), models.BookingRequest{
		StartTime:   day(9, 0),
		EndTime:     day(10, 0),
		CounselorID: "counselor2",
		UserEmail:   "a@b.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, conf.EventID)
}
