package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	reminderService "jamath_backend/internals/features/finance/reminders/service"
)

type reminderRunner interface {
	Run(ctx context.Context) (reminderService.Result, error)
}

type rolloverRunner interface {
	Run(ctx context.Context) error
}

// Daily runs the cron jobs in-process once per UTC day, for deployments
// without an external cron hitting /api/cron.
type Daily struct {
	Reminders reminderRunner
	Rollover  rolloverRunner
	Interval  time.Duration
	Now       func() time.Time
	Log       *zap.Logger

	lastDay string
}

func NewDaily(reminders reminderRunner, rollover rolloverRunner, log *zap.Logger) *Daily {
	return &Daily{
		Reminders: reminders,
		Rollover:  rollover,
		Interval:  time.Hour,
		Now:       time.Now,
		Log:       log.Named("scheduler"),
	}
}

// Start checks every Interval and returns when ctx is done.
func (d *Daily) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(d.Interval)
		defer ticker.Stop()

		d.Tick(ctx)
		for {
			select {
			case <-ctx.Done():
				d.Log.Info("scheduler stopped")
				return
			case <-ticker.C:
				d.Tick(ctx)
			}
		}
	}()
}

// Tick runs today's jobs unless they already ran today. The rollover runs
// before the reminders so January 1 reminders see the new dues.
func (d *Daily) Tick(ctx context.Context) {
	now := d.Now().UTC()
	day := now.Format("2006-01-02")
	if day == d.lastDay {
		return
	}
	d.lastDay = day

	if now.Month() == time.January && now.Day() == 1 {
		if err := d.Rollover.Run(ctx); err != nil {
			d.Log.Error("scheduled rollover failed", zap.Error(err))
		}
	}

	res, err := d.Reminders.Run(ctx)
	if err != nil {
		d.Log.Error("scheduled reminders failed", zap.Error(err))
		return
	}
	d.Log.Info("scheduled reminders done", zap.String("message", res.Message), zap.Int("sent", res.Sent))
}
