package models

// MailPayload is one outbound confirmation or reminder email.
type MailPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

// SMSPayload is one outbound text message.
type SMSPayload struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// ReminderPayload schedules a nudge ahead of an appointment start.
type ReminderPayload struct {
	CounselorID string `json:"counselorId"`
	UserEmail   string `json:"userEmail"`
	StartsAt    string `json:"startsAt"`
	MeetLink    string `json:"meetLink"`
}
