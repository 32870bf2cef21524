package booking

import (
	"context"
	"fmt"

	"counselconnect/models"
	"counselconnect/services/availability"

	"go.uber.org/zap"
)

const appointmentSummary = "Appointment"

// BookAppointment commits one appointment. The busy snapshot is re-fetched
// immediately before the write: the availability read that offered the slot
// is stale by now, and the calendar has no conditional-create primitive, so
// this re-check is what keeps losing racers on SlotNoLongerAvailable
// instead of double-booking.
func (s *DefaultBookingService) BookAppointment(ctx context.Context, req models.BookingRequest) (*models.BookingConfirmation, error) {
	if err := validateRequest(req, s.Registry); err != nil {
		return nil, err
	}

	busy, err := s.Calendar.ListBusyIntervals(ctx, req.CounselorID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if availability.Conflicts(req.StartTime, req.EndTime, busy) {
		return nil, SlotNoLongerAvailableError{CounselorID: req.CounselorID, Start: req.StartTime}
	}

	// Claim the slot for the duration of the calendar round trip so two
	// clients of this service cannot both pass the re-check above.
	reserved, err := s.Reservations.Reserve(ctx, req.CounselorID, req.StartTime)
	if err != nil {
		s.Logger.Warn("reservation store unavailable, proceeding unguarded", zap.Error(err))
	} else if !reserved {
		return nil, SlotNoLongerAvailableError{CounselorID: req.CounselorID, Start: req.StartTime}
	} else {
		defer s.Reservations.Release(ctx, req.CounselorID, req.StartTime)
	}

	event := models.AppointmentEvent{
		Summary:  appointmentSummary,
		Start:    req.StartTime,
		End:      req.EndTime,
		Timezone: s.Timezone,
	}
	eventID, err := s.Calendar.CreateEvent(ctx, req.CounselorID, event)
	if err != nil {
		return nil, err
	}

	confirmation := &models.BookingConfirmation{
		EventID:     eventID,
		CounselorID: req.CounselorID,
		Start:       req.StartTime,
		End:         req.EndTime,
		MeetLink:    "https://meet.google.com/" + eventID,
	}

	// The appointment stands from here on. Notification trouble gets
	// logged and surfaced, never rolled back into the calendar.
	s.requestNotifications(req, confirmation)

	return confirmation, nil
}

func (s *DefaultBookingService) requestNotifications(req models.BookingRequest, conf *models.BookingConfirmation) {
	counselor, _ := s.Registry.Lookup(req.CounselorID)

	start := conf.Start.In(s.Location).Format(models.TimeFormat)
	end := conf.End.In(s.Location).Format(models.TimeFormat)

	mail := models.MailPayload{
		To:      []string{req.UserEmail, counselor.Email},
		Subject: "Appointment Confirmation",
		Body: fmt.Sprintf(
			"Hello,\n\nYour appointment has been booked with the counselor from %s to %s. You can join the meeting using the following link: %s\n\nThank you.",
			start, end, conf.MeetLink,
		),
	}
	if err := s.Dispatcher.EnqueueMail(mail); err != nil {
		s.Logger.Error("booking confirmed but mail dispatch failed",
			zap.String("eventId", conf.EventID), zap.Error(err))
	}

	if counselor.Phone != "" {
		sms := models.SMSPayload{
			To:   counselor.Phone,
			Body: fmt.Sprintf("New appointment booked from %s to %s.", start, end),
		}
		if err := s.Dispatcher.EnqueueSMS(sms); err != nil {
			s.Logger.Error("booking confirmed but sms dispatch failed",
				zap.String("eventId", conf.EventID), zap.Error(err))
		}
	}

	reminder := models.ReminderPayload{
		CounselorID: req.CounselorID,
		UserEmail:   req.UserEmail,
		StartsAt:    start,
		MeetLink:    conf.MeetLink,
	}
	if err := s.Dispatcher.EnqueueReminder(reminder, conf.Start); err != nil {
		s.Logger.Error("booking confirmed but reminder dispatch failed",
			zap.String("eventId", conf.EventID), zap.Error(err))
	}
}
