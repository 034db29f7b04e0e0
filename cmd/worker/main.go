package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sevamart/sevamart-backend/config"
	"github.com/sevamart/sevamart-backend/internal/application"
	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	pginfra "github.com/sevamart/sevamart-backend/internal/infrastructure/postgres"
	"github.com/sevamart/sevamart-backend/pkg/helpers"
	"github.com/sevamart/sevamart-backend/pkg/mailer"
)

// Notification fan-out worker: consumes queued jobs, bulk-inserts one
// notification row per recipient and optionally sends the attached
// email through Mailgun.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-worker", cfg.Env)

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	notifications := pginfra.NewNotificationRepository(pool)

	var mg *mailer.Mailgun
	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			log.Fatal("MAIL_SEND_ENABLED=true but Mailgun not configured")
		}
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.NotificationQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.NotificationQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job application.NotificationJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logger.WithError(err).Warn("bad message, dropping")
				_ = msg.Nack(false, false)
				continue
			}

			if len(job.RecipientIDs) > 0 {
				batch := make([]*entity.Notification, 0, len(job.RecipientIDs))
				for _, id := range job.RecipientIDs {
					batch = append(batch, &entity.Notification{
						UserID:  id,
						Title:   job.Title,
						Message: job.Message,
						Type:    job.Type,
						Link:    job.Link,
					})
				}
				if err := notifications.BulkCreate(batch); err != nil {
					logger.WithError(err).WithField("recipients", len(batch)).Error("bulk insert failed, requeueing")
					_ = msg.Nack(false, true)
					continue
				}
			}

			if job.Email != nil && mg != nil {
				c, cancel := context.WithTimeout(ctx, 15*time.Second)
				if err := mg.Send(c, job.Email.To, job.Email.Subject, job.Email.Text, ""); err != nil {
					// email is best effort; the rows are already in
					logger.WithError(err).WithField("to", job.Email.To).Warn("email send failed")
				}
				cancel()
			}

			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.Infof("notification worker listening on queue=%s", cfg.NotificationQueue)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
