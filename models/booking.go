package models

import "time"

// BookingRequest carries everything needed to commit one appointment.
type BookingRequest struct {
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	CounselorID string    `json:"counselorId"`
	UserEmail   string    `json:"userEmail"`
}

// AppointmentEvent is the normalized payload handed to the calendar writer
// once a request has passed validation.
type AppointmentEvent struct {
	Summary  string    `json:"summary"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Timezone string    `json:"timezone"`
}

// BookingConfirmation is returned to the caller after the calendar write
// succeeds. The appointment stands even if notification later fails.
type BookingConfirmation struct {
	EventID     string    `json:"eventId"`
	CounselorID string    `json:"counselorId"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	MeetLink    string    `json:"meetLink"`
}

// AvailabilityResult lists offerable slot labels alongside the spans that
// are already taken.
type AvailabilityResult struct {
	AvailableSlots []string `json:"availableSlots"`
	BookedSlots    []string `json:"bookedSlots"`
}
