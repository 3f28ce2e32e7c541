package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"summercamp-backend/entity"
	"summercamp-backend/errs"
)

const PaymentCommitted = "payment.committed"

type PaymentEvent struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	At      time.Time       `json:"at"`
	Payment *entity.Payment `json:"payment"`
}

func NewPaymentEvent(p *entity.Payment) *PaymentEvent {
	return &PaymentEvent{
		ID:      uuid.NewString(),
		Type:    PaymentCommitted,
		At:      time.Now().UTC(),
		Payment: p,
	}
}

func (ev *PaymentEvent) Publishing() (amqp.Publishing, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         ev.Type,
		Timestamp:    ev.At,
		Body:         b,
	}, nil
}

// PublishPayment announces a committed payment on the payments exchange.
func (e *Events) PublishPayment(ctx context.Context, p *entity.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := NewPaymentEvent(p).Publishing()
	if err != nil {
		return err
	}

	rch, err := e.Conn.Channel()
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrQueue, err)
	}
	defer rch.Close()

	if err := rch.Publish(PaymentsExchange, "", false, false, msg); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrQueue, err)
	}

	return nil
}
