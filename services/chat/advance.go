package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"counselconnect/models"
	"counselconnect/services/availability"
	"counselconnect/services/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const greeting = "Hey! What's your name?"

// restartSignal resets a session back to the greeting from any stage.
const restartSignal = "restart"

// StartSession opens a conversation and greets the client.
func (s *DefaultChatService) StartSession(ctx context.Context, userEmail string) (*AdvanceResult, error) {
	session := &models.ChatSession{
		SessionID:    uuid.New().String(),
		Stage:        models.StageAwaitingName,
		UserEmail:    userEmail,
		SelectedDate: s.now().In(s.Location).Format(models.DateFormat),
		UpdatedAt:    s.now(),
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return &AdvanceResult{Session: session, Replies: []string{greeting}}, nil
}

// Advance runs one state-machine step under the session's message lock.
func (s *DefaultChatService) Advance(ctx context.Context, sessionID, utterance string) (*AdvanceResult, error) {
	locked, err := s.Store.Lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrSessionBusy
	}
	defer s.Store.Unlock(ctx, sessionID)

	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	replies := s.transition(ctx, session, strings.TrimSpace(utterance))

	session.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return &AdvanceResult{Session: session, Replies: replies}, nil
}

// transition applies one utterance. Invalid input re-prompts without moving;
// a collaborator failure surfaces a retryable message and leaves the stage
// untouched.
func (s *DefaultChatService) transition(ctx context.Context, session *models.ChatSession, utterance string) []string {
	if strings.EqualFold(utterance, restartSignal) {
		session.Reset()
		return []string{greeting}
	}

	switch session.Stage {
	case models.StageAwaitingName:
		return s.handleName(session, utterance)
	case models.StageAwaitingCounselor:
		return s.handleCounselor(session, utterance)
	case models.StageAwaitingTimeWindow:
		return s.handleTimeWindow(ctx, session, utterance)
	case models.StageAwaitingSlotChoice:
		return s.handleSlotChoice(ctx, session, utterance)
	}

	s.Logger.Warn("session in unknown stage, resetting",
		zap.String("sessionId", session.SessionID), zap.Int("stage", int(session.Stage)))
	session.Reset()
	return []string{greeting}
}

func (s *DefaultChatService) handleName(session *models.ChatSession, utterance string) []string {
	if utterance == "" {
		return []string{greeting}
	}
	session.UserName = utterance
	session.Stage = models.StageAwaitingCounselor
	return []string{fmt.Sprintf(
		"Welcome %s, we have the following counselors available: %s",
		utterance, strings.Join(s.Registry.IDs(), ", "),
	)}
}

func (s *DefaultChatService) handleCounselor(session *models.ChatSession, utterance string) []string {
	if !s.Registry.Knows(utterance) {
		return []string{fmt.Sprintf(
			"Sorry, I do not recognize %s. Please select a counselor from the list: %s",
			utterance, strings.Join(s.Registry.IDs(), ", "),
		)}
	}
	session.CounselorID = utterance
	session.Stage = models.StageAwaitingTimeWindow
	return []string{fmt.Sprintf(
		"Hello, I am %s. When do you want to book an appointment? Morning (9-12), Afternoon (12-5), Evening (5-9)?",
		utterance,
	)}
}

func (s *DefaultChatService) handleTimeWindow(ctx context.Context, session *models.ChatSession, utterance string) []string {
	label := strings.ToLower(utterance)
	date, err := time.ParseInLocation(models.DateFormat, session.SelectedDate, s.Location)
	if err != nil {
		date = s.now().In(s.Location)
	}

	result, err := s.Booking.CheckAvailableSlots(ctx, date, label, session.CounselorID)
	if err != nil {
		var unknownLabel booking.UnknownTimeRangeLabelError
		if errors.As(err, &unknownLabel) {
			return []string{"Sorry, I do not recognize that time range. Please select Morning, Afternoon, or Evening."}
		}
		s.Logger.Error("availability lookup failed",
			zap.String("sessionId", session.SessionID), zap.Error(err))
		return []string{"Sorry, I am having trouble fetching the available slots."}
	}

	if len(result.AvailableSlots) == 0 {
		return []string{fmt.Sprintf(
			"Sorry, there are no free %s slots left that day. Please try Morning, Afternoon, or Evening.",
			label,
		)}
	}

	session.TimeWindowLabel = label
	session.CandidateSlots = result.AvailableSlots
	session.Stage = models.StageAwaitingSlotChoice
	return []string{fmt.Sprintf("Available slots: %s", strings.Join(result.AvailableSlots, ", "))}
}

func (s *DefaultChatService) handleSlotChoice(ctx context.Context, session *models.ChatSession, utterance string) []string {
	chosen, err := time.Parse(models.TimeFormat, utterance)
	if err != nil {
		return []string{fmt.Sprintf(
			"Please pick one of the offered slots: %s",
			strings.Join(session.CandidateSlots, ", "),
		)}
	}

	date, err := time.ParseInLocation(models.DateFormat, session.SelectedDate, s.Location)
	if err != nil {
		date = s.now().In(s.Location)
	}
	start := time.Date(date.Year(), date.Month(), date.Day(), chosen.Hour(), chosen.Minute(), 0, 0, s.Location)
	end := start.Add(availability.AppointmentLength)

	_, err = s.Booking.BookAppointment(ctx, models.BookingRequest{
		StartTime:   start,
		EndTime:     end,
		CounselorID: session.CounselorID,
		UserEmail:   session.UserEmail,
	})
	if err != nil {
		var gone booking.SlotNoLongerAvailableError
		if errors.As(err, &gone) {
			return []string{"Sorry, that slot has just been taken. Please pick another of the offered slots."}
		}
		s.Logger.Error("booking attempt failed",
			zap.String("sessionId", session.SessionID), zap.Error(err))
		return []string{"Sorry, I am having trouble booking the appointment."}
	}

	session.Reset()
	return []string{
		"Thank you! Your appointment has been booked.",
		greeting,
	}
}
