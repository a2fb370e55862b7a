package queue

import (
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"bluekey_backend/internal/model"
)

// EmailSender is the slice of the email service the worker needs.
type EmailSender interface {
	SendRawEmail(to, subject, html string) error
}

// Worker drains the campaign email queue: one message per recipient,
// manual acks, failures dead-lettered for inspection.
type Worker struct {
	Channel *amqp.Channel
	Sender  EmailSender
	DB      *gorm.DB
}

func NewWorker(ch *amqp.Channel, sender EmailSender, db *gorm.DB) *Worker {
	return &Worker{Channel: ch, Sender: sender, DB: db}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack off, acks are manual
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("Could not register campaign consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload CampaignEmailPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("Dropping malformed campaign message: %s", err)
				d.Nack(false, false)
				continue
			}

			if err := w.process(payload); err != nil {
				log.Printf("Campaign send failed for %s: %s", payload.Email, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf("Campaign worker waiting on queue %q", queueName)
	<-forever
}

func (w *Worker) process(payload CampaignEmailPayload) error {
	if err := w.Sender.SendRawEmail(payload.Email, payload.Subject, payload.BodyHTML); err != nil {
		w.markRecipient(payload.RecipientID, model.RecipientFailed, err.Error())
		return err
	}

	w.markRecipient(payload.RecipientID, model.RecipientSent, "")
	return nil
}

func (w *Worker) markRecipient(id uint, status model.RecipientStatus, lastError string) {
	updates := map[string]interface{}{
		"status":     status,
		"last_error": lastError,
	}
	if status == model.RecipientSent {
		updates["sent_at"] = time.Now()
	}

	if err := w.DB.Model(&model.CampaignRecipient{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		log.Printf("Could not mark recipient %d as %s: %v", id, status, err)
	}
}
