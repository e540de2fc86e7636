// Package notify defines the outbound notification contract.  Nothing
// here delivers mail: notifications are written to the application log
// or handed to the queue consumer, which appends them to a log file.
package notify

import (
    "context"

    "github.com/labstack/gommon/log"
)

// Kinds of notification, carried through the queue so the consumer can
// tell them apart.
const (
    KindWelcome          = "welcome"
    KindBookingConfirmed = "booking_confirmed"
    KindBookingCancelled = "booking_cancelled"
    KindCheckInReminder  = "checkin_reminder"
    KindPaymentReceipt   = "payment_receipt"
)

// Email is a rendered message addressed to one recipient.
type Email struct {
    Kind    string `json:"kind"`
    To      string `json:"to"`
    Name    string `json:"name"`
    Subject string `json:"subject"`
    Body    string `json:"body"`
}

// Notifier accepts a message for delivery.  Callers treat errors as
// non-fatal.
type Notifier interface {
    Notify(ctx context.Context, e Email) error
}

// LogNotifier writes each message to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, e Email) error {
    log.Infof("[notify] kind=%s to=%s subject=%q", e.Kind, e.To, e.Subject)
    return nil
}

// Fallback tries Primary and, when it fails, logs the error and hands
// the message to Secondary.
type Fallback struct {
    Primary   Notifier
    Secondary Notifier
}

func (f Fallback) Notify(ctx context.Context, e Email) error {
    err := f.Primary.Notify(ctx, e)
    if err == nil {
        return nil
    }
    log.Warnf("[notify] primary failed for kind=%s to=%s: %v", e.Kind, e.To, err)
    return f.Secondary.Notify(ctx, e)
}

// Discard drops every message.
type Discard struct{}

func (Discard) Notify(context.Context, Email) error { return nil }
