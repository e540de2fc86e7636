package queue

import (
    "context"
    "encoding/json"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/gommon/log"
    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/property-booking/internal/notify"
)

// Publisher publishes notification events to a durable queue.  It
// dials per message; notification volume is a few messages per booking.
type Publisher struct {
    URL   string
    Queue string
}

func NewPublisher(url, queue string) *Publisher { return &Publisher{URL: url, Queue: queue} }

// Notify implements notify.Notifier.  Errors are logged and returned so
// the caller can fall back.
func (p *Publisher) Notify(ctx context.Context, e notify.Email) error {
    body, err := json.Marshal(eventFromEmail(uuid.NewString(), e, time.Now()))
    if err != nil {
        return err
    }
    return p.publish(ctx, body)
}

func (p *Publisher) publish(ctx context.Context, body []byte) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Warnf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Warnf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
        log.Warnf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    // default exchange, routing key = queue name
    if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
        log.Warnf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
