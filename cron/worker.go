package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"counselconnect/config"
	"counselconnect/models"
	"counselconnect/services/notification"

	"github.com/hibiken/asynq"
)

const (
	TypeMailSend     = "notification:mail"
	TypeSMSSend      = "notification:sms"
	TypeReminderSend = "reminder:send"
)

// ReminderLead is how far before the appointment start the reminder fires.
const ReminderLead = 30 * time.Minute

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Dispatcher enqueues notification work so the booking path never blocks on
// SMTP or Twilio. Delivery failures stay in the queue; they never touch an
// already-committed booking.
type Dispatcher struct {
	client *asynq.Client
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{client: asynq.NewClient(redisOpts())}
}

// EnqueueMail schedules an email for immediate delivery.
func (d *Dispatcher) EnqueueMail(mail models.MailPayload) error {
	payload, err := json.Marshal(mail)
	if err != nil {
		return err
	}
	_, err = d.client.Enqueue(asynq.NewTask(TypeMailSend, payload), asynq.MaxRetry(3))
	return err
}

// EnqueueSMS schedules a text for immediate delivery.
func (d *Dispatcher) EnqueueSMS(sms models.SMSPayload) error {
	payload, err := json.Marshal(sms)
	if err != nil {
		return err
	}
	_, err = d.client.Enqueue(asynq.NewTask(TypeSMSSend, payload), asynq.MaxRetry(3))
	return err
}

// EnqueueReminder schedules a reminder email ahead of the appointment
// start. Appointments closer than the lead time get no reminder.
func (d *Dispatcher) EnqueueReminder(reminder models.ReminderPayload, startsAt time.Time) error {
	fireAt := startsAt.Add(-ReminderLead)
	if !fireAt.After(time.Now()) {
		return nil
	}
	payload, err := json.Marshal(reminder)
	if err != nil {
		return err
	}
	_, err = d.client.Enqueue(asynq.NewTask(TypeReminderSend, payload),
		asynq.ProcessAt(fireAt), asynq.MaxRetry(3))
	return err
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}

// InitNotificationWorker runs the async worker in background.
func InitNotificationWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMailSend, handleMailTask(notifSvc))
	mux.HandleFunc(TypeSMSSend, handleSMSTask(notifSvc))
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleMailTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var mail models.MailPayload
		if err := json.Unmarshal(task.Payload(), &mail); err != nil {
			log.Printf("[MailHandler] invalid payload: %v", err)
			return err
		}
		return notifSvc.SendMail(ctx, mail)
	}
}

func handleSMSTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var sms models.SMSPayload
		if err := json.Unmarshal(task.Payload(), &sms); err != nil {
			log.Printf("[SMSHandler] invalid payload: %v", err)
			return err
		}
		if err := notifSvc.SendSMS(ctx, sms); err != nil {
			if err == notification.ErrSMSDisabled {
				log.Printf("[SMSHandler] sms channel disabled, dropping task")
				return nil
			}
			return err
		}
		return nil
	}
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		body := fmt.Sprintf(
			"Hello,\n\nA reminder that your appointment starts at %s. You can join the meeting using the following link: %s\n\nThank you.",
			p.StartsAt, p.MeetLink,
		)
		return notifSvc.SendMail(ctx, models.MailPayload{
			To:      []string{p.UserEmail},
			Subject: "Appointment Reminder",
			Body:    body,
		})
	}
}
