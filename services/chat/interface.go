package chat

import (
	"context"
	"time"

	"counselconnect/config"
	"counselconnect/models"
	"counselconnect/services/booking"

	"go.uber.org/zap"
)

// ChatService drives the conversational booking dialogue.
type ChatService interface {
	// StartSession opens a fresh conversation for a client. The email is
	// collected up front; it becomes the booking contact.
	StartSession(ctx context.Context, userEmail string) (*AdvanceResult, error)
	// Advance feeds one user utterance into the session's state machine and
	// returns the bot's replies. Messages are processed one at a time per
	// session, in arrival order.
	Advance(ctx context.Context, sessionID, utterance string) (*AdvanceResult, error)
}

// AdvanceResult carries the updated session and what the bot says next.
type AdvanceResult struct {
	Session *models.ChatSession `json:"session"`
	Replies []string            `json:"replies"`
}

// DefaultChatService implements ChatService over the booking engine.
type DefaultChatService struct {
	Store    SessionStore
	Booking  booking.BookingService
	Registry *config.CounselorRegistry
	Location *time.Location
	Logger   *zap.Logger

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultChatService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
