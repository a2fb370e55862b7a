package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// CampaignEmailPayload is one queued recipient send. The subject/body
// are snapshotted at queue time so later campaign edits never change an
// in-flight send.
type CampaignEmailPayload struct {
	MessageID   string `json:"message_id"`
	CampaignID  uint   `json:"campaign_id"`
	RecipientID uint   `json:"recipient_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	BodyHTML    string `json:"body_html"`
}

type ProducerInterface interface {
	PublishCampaignEmail(ctx context.Context, payload CampaignEmailPayload) error
}

type Producer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) PublishCampaignEmail(ctx context.Context, payload CampaignEmailPayload) error {
	if payload.MessageID == "" {
		payload.MessageID = uuid.NewString()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.MessageID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("could not publish campaign email: %w", err)
	}

	return nil
}
