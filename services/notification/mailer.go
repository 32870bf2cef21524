package notification

import (
	"context"
	"fmt"

	"counselconnect/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// DefaultNotificationService sends confirmation mail over SMTP and, when a
// Twilio client is configured, texts over Twilio.
type DefaultNotificationService struct {
	SMTPHost     string
	SMTPPort     int
	From         string
	SMTPPassword string

	TwilioClient *twilio.RestClient
	TwilioFrom   string

	Logger *zap.Logger
}

func NewDefaultNotificationService(host string, port int, from, password string, logger *zap.Logger) *DefaultNotificationService {
	return &DefaultNotificationService{
		SMTPHost:     host,
		SMTPPort:     port,
		From:         from,
		SMTPPassword: password,
		Logger:       logger,
	}
}

// WithTwilio enables the optional SMS channel.
func (s *DefaultNotificationService) WithTwilio(accountSID, authToken, from string) *DefaultNotificationService {
	s.TwilioClient = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	s.TwilioFrom = from
	return s
}

// SendMail delivers one email to every listed recipient.
func (s *DefaultNotificationService) SendMail(ctx context.Context, mail models.MailPayload) error {
	if len(mail.To) == 0 {
		return MailError{Cause: fmt.Errorf("no recipients")}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.From)
	msg.SetHeader("To", mail.To...)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/plain", mail.Body)

	dialer := gomail.NewDialer(s.SMTPHost, s.SMTPPort, s.From, s.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		s.Logger.Error("failed to send mail",
			zap.Strings("to", mail.To), zap.Error(err))
		return MailError{Cause: err}
	}

	s.Logger.Info("mail sent", zap.Strings("to", mail.To), zap.String("subject", mail.Subject))
	return nil
}

// SendSMS delivers one text message, if the Twilio channel is configured.
func (s *DefaultNotificationService) SendSMS(ctx context.Context, sms models.SMSPayload) error {
	if s.TwilioClient == nil {
		return ErrSMSDisabled
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(sms.To)
	params.SetFrom(s.TwilioFrom)
	params.SetBody(sms.Body)

	if _, err := s.TwilioClient.Api.CreateMessage(params); err != nil {
		s.Logger.Error("failed to send sms", zap.String("to", sms.To), zap.Error(err))
		return SmsError{Cause: err}
	}

	s.Logger.Info("sms sent", zap.String("to", sms.To))
	return nil
}
