package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"portal/internal/utils"
)

const reservationQueue = "reservation.submitted"

// Publisher pushes domain events to RabbitMQ. A zero URL disables publishing
// entirely; errors are logged and returned so callers can ignore them without
// interrupting the request flow.
type Publisher struct {
	URL string
}

// Enabled reports whether a broker is configured.
func (p Publisher) Enabled() bool {
	return p.URL != ""
}

// PublishReservationSubmitted sends one event to the reservation.submitted
// queue. Messages are persistent; the queue is declared idempotently.
func (p Publisher) PublishReservationSubmitted(ctx context.Context, event ReservationSubmittedEvent) error {
	if !p.Enabled() {
		return nil
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		utils.Log.Errorf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		utils.Log.Errorf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(reservationQueue, true, false, false, false, nil); err != nil {
		utils.Log.Errorf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", reservationQueue, false, false, pub); err != nil {
		utils.Log.Errorf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
