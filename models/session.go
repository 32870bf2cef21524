package models

import "time"

// Stage represents how far a chat client has progressed through the
// booking dialogue.
type Stage int

const (
	StageAwaitingName Stage = iota
	StageAwaitingCounselor
	StageAwaitingTimeWindow
	StageAwaitingSlotChoice
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingName:
		return "awaiting_name"
	case StageAwaitingCounselor:
		return "awaiting_counselor"
	case StageAwaitingTimeWindow:
		return "awaiting_time_window"
	case StageAwaitingSlotChoice:
		return "awaiting_slot_choice"
	}
	return "unknown"
}

// ChatSession holds one client's conversational context between messages.
// Owned exclusively by that client; advanced one message at a time.
type ChatSession struct {
	SessionID       string    `json:"sessionId"`
	Stage           Stage     `json:"stage"`
	UserName        string    `json:"userName,omitempty"`
	CounselorID     string    `json:"counselorId,omitempty"`
	TimeWindowLabel string    `json:"timeWindowLabel,omitempty"`
	SelectedDate    string    `json:"selectedDate,omitempty"`
	UserEmail       string    `json:"userEmail,omitempty"`
	CandidateSlots  []string  `json:"candidateSlots,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Reset returns the client to the start of the dialogue. Session identity
// and the contact email supplied at creation survive the reset.
func (s *ChatSession) Reset() {
	s.Stage = StageAwaitingName
	s.UserName = ""
	s.CounselorID = ""
	s.TimeWindowLabel = ""
	s.CandidateSlots = nil
}
