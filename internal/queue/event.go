// Package queue carries notification events over RabbitMQ: Publisher
// implements notify.Notifier on the producing side and the consumer
// appends every event to a log file.
package queue

import (
    "time"

    "github.com/iliyamo/property-booking/internal/notify"
)

// NotificationEvent is the message body published for every outbound
// notification.
type NotificationEvent struct {
    ID       string    `json:"id"`
    Kind     string    `json:"kind"`
    To       string    `json:"to"`
    Name     string    `json:"name"`
    Subject  string    `json:"subject"`
    Body     string    `json:"body"`
    QueuedAt time.Time `json:"queued_at"`
}

func eventFromEmail(id string, e notify.Email, at time.Time) NotificationEvent {
    return NotificationEvent{
        ID:       id,
        Kind:     e.Kind,
        To:       e.To,
        Name:     e.Name,
        Subject:  e.Subject,
        Body:     e.Body,
        QueuedAt: at.UTC(),
    }
}
