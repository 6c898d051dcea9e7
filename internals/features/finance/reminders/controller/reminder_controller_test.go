package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reminderService "jamath_backend/internals/features/finance/reminders/service"
	"jamath_backend/internals/middlewares/auth"
)

type fakeRunner struct {
	res         reminderService.Result
	err         error
	calls       int
	hadDeadline bool
}

func (f *fakeRunner) Run(ctx context.Context) (reminderService.Result, error) {
	f.calls++
	_, f.hadDeadline = ctx.Deadline()
	return f.res, f.err
}

func serve(t *testing.T, runner *fakeRunner, header string) (int, string) {
	t.Helper()
	app := fiber.New()
	ctrl := NewReminderController(runner)
	app.Get("/api/cron/send-reminders", auth.CronSecret("cron"), ctrl.SendReminders)

	req := httptest.NewRequest("GET", "/api/cron/send-reminders", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestSendReminders_Unauthorized(t *testing.T) {
	runner := &fakeRunner{}
	status, body := serve(t, runner, "Bearer nope")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body)
	assert.Zero(t, runner.calls)
}

func TestSendReminders_NoOp(t *testing.T) {
	runner := &fakeRunner{res: reminderService.Result{Message: reminderService.MsgNothingScheduled}}
	status, body := serve(t, runner, "Bearer cron")
	require.Equal(t, fiber.StatusOK, status)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, map[string]any{
		"success": true,
		"message": "No reminders scheduled for today. Sleeping until tomorrow.",
	}, got)
}

func TestSendReminders_Sent(t *testing.T) {
	runner := &fakeRunner{res: reminderService.Result{Type: reminderService.Annual, Scheduled: true, Sent: 2, Message: "Successfully sent annual reminders."}}
	status, body := serve(t, runner, "Bearer cron")
	require.Equal(t, fiber.StatusOK, status)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, true, got["success"])
	assert.Equal(t, float64(2), got["sent"])
	assert.Equal(t, "Successfully sent annual reminders.", got["message"])
}

func TestSendReminders_Failure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("provider down")}
	status, body := serve(t, runner, "Bearer cron")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"provider down"}`, body)
}

func TestSendReminders_IgnoresRequestDeadline(t *testing.T) {
	runner := &fakeRunner{res: reminderService.Result{Message: reminderService.MsgNothingScheduled}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), time.Minute)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})
	app.Get("/api/cron/send-reminders", auth.CronSecret("cron"), NewReminderController(runner).SendReminders)

	req := httptest.NewRequest("GET", "/api/cron/send-reminders", nil)
	req.Header.Set("Authorization", "Bearer cron")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, runner.calls)
	assert.False(t, runner.hadDeadline)
}
