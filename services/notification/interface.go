package notification

import (
	"context"
	"fmt"

	"counselconnect/models"
)

// NotificationService delivers booking confirmations and reminders. Email
// is the primary channel; SMS is optional and may be absent.
type NotificationService interface {
	SendMail(ctx context.Context, mail models.MailPayload) error
	SendSMS(ctx context.Context, sms models.SMSPayload) error
}

// MailError wraps a failed email delivery. A booking already committed to
// the calendar stands regardless.
type MailError struct {
	Cause error
}

func (e MailError) Error() string { return fmt.Sprintf("mail delivery failed: %v", e.Cause) }

func (e MailError) Unwrap() error { return e.Cause }

// SmsError wraps a failed SMS delivery.
type SmsError struct {
	Cause error
}

func (e SmsError) Error() string { return fmt.Sprintf("sms delivery failed: %v", e.Cause) }

func (e SmsError) Unwrap() error { return e.Cause }

// ErrSMSDisabled is returned when no SMS transport is configured.
var ErrSMSDisabled = fmt.Errorf("sms transport not configured")
