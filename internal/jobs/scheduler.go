// Package jobs runs the periodic background work of the API process.
package jobs

import (
    "context"
    "time"

    "github.com/labstack/gommon/log"
    "github.com/robfig/cron/v3"
)

// Reminder sends the check-in reminders due after now.
type Reminder interface {
    SendCheckInReminders(ctx context.Context, now time.Time) (int, error)
}

// Scheduler wraps a cron runner evaluated in UTC.
type Scheduler struct {
    c *cron.Cron
}

// NewScheduler registers the reminder job on spec (standard five-field
// cron syntax).  An empty spec yields a scheduler with no jobs.
func NewScheduler(spec string, r Reminder) (*Scheduler, error) {
    c := cron.New(cron.WithLocation(time.UTC))
    if spec != "" {
        if _, err := c.AddFunc(spec, reminderJob(r, time.Now, time.Minute)); err != nil {
            return nil, err
        }
        log.Infof("[jobs] check-in reminders scheduled: %q", spec)
    }
    return &Scheduler{c: c}, nil
}

// Jobs reports how many jobs are registered.
func (s *Scheduler) Jobs() int { return len(s.c.Entries()) }

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() { s.c.Start() }

// Stop prevents new runs and returns a context that is done once the
// running jobs have finished.
func (s *Scheduler) Stop() context.Context { return s.c.Stop() }

func reminderJob(r Reminder, now func() time.Time, timeout time.Duration) func() {
    return func() {
        ctx, cancel := context.WithTimeout(context.Background(), timeout)
        defer cancel()
        n, err := r.SendCheckInReminders(ctx, now())
        if err != nil {
            log.Errorf("[jobs] check-in reminders failed: %v", err)
            return
        }
        log.Infof("[jobs] check-in reminders sent: %d", n)
    }
}
