package events

import (
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"summercamp-backend/log"
)

const (
	PaymentsExchange = "payments"

	dialAttempts = 6
)

type Events struct {
	Conn *amqp.Connection
}

// Connect dials RabbitMQ, doubling the wait between attempts, and declares
// the exchanges this service publishes to.
func Connect(connString string) (*Events, error) {
	log.Logger.Info("Trying to connect to rabbitmq...")

	var conn *amqp.Connection
	t := time.Second
	for i := 0; i < dialAttempts; i++ {
		var err error
		conn, err = amqp.Dial(connString)
		if err != nil {
			if i == dialAttempts-1 {
				return nil, err
			}
			log.Logger.Warn("rabbitmq dial failed", zap.Error(err), zap.Duration("retryIn", t))
			time.Sleep(t)
			t *= 2

			continue
		}

		break
	}
	log.Logger.Info("Connected to rabbitmq")

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		PaymentsExchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Events{Conn: conn}, nil
}

func (e *Events) Close() error {
	return e.Conn.Close()
}
