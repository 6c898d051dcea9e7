package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	reminderService "jamath_backend/internals/features/finance/reminders/service"
)

type countingReminders struct{ calls int }

func (c *countingReminders) Run(context.Context) (reminderService.Result, error) {
	c.calls++
	return reminderService.Result{Message: reminderService.MsgNothingScheduled}, nil
}

type countingRollover struct {
	calls int
	err   error
}

func (c *countingRollover) Run(context.Context) error {
	c.calls++
	return c.err
}

func TestTick_OncePerDay(t *testing.T) {
	rem := &countingReminders{}
	roll := &countingRollover{}
	d := NewDaily(rem, roll, zap.NewNop())

	now := time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC)
	d.Now = func() time.Time { return now }

	d.Tick(context.Background())
	now = now.Add(5 * time.Hour)
	d.Tick(context.Background())
	assert.Equal(t, 1, rem.calls)

	now = now.Add(24 * time.Hour)
	d.Tick(context.Background())
	assert.Equal(t, 2, rem.calls)
	assert.Zero(t, roll.calls)
}

func TestTick_RolloverOnNewYear(t *testing.T) {
	rem := &countingReminders{}
	roll := &countingRollover{err: errors.New("proc failed")}
	d := NewDaily(rem, roll, zap.NewNop())
	d.Now = func() time.Time { return time.Date(2026, 1, 1, 0, 30, 0, 0, time.UTC) }

	d.Tick(context.Background())
	assert.Equal(t, 1, roll.calls)
	assert.Equal(t, 1, rem.calls)
}

func TestTick_UsesUTCDate(t *testing.T) {
	rem := &countingReminders{}
	roll := &countingRollover{}
	d := NewDaily(rem, roll, zap.NewNop())
	ist := time.FixedZone("IST", 5*3600+1800)
	// Jan 1 in India, still Dec 31 in UTC
	d.Now = func() time.Time { return time.Date(2026, 1, 1, 3, 0, 0, 0, ist) }

	d.Tick(context.Background())
	assert.Zero(t, roll.calls)
}
