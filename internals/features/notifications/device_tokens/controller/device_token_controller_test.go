package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tokenModel "jamath_backend/internals/features/notifications/device_tokens/model"
)

type fakeRepo struct {
	got []tokenModel.DeviceToken
	err error
}

func (f *fakeRepo) Upsert(_ context.Context, t *tokenModel.DeviceToken) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, *t)
	return nil
}

func newApp(repo *fakeRepo) *fiber.App {
	app := fiber.New()
	ctrl := NewDeviceTokenController(repo, zap.NewNop())
	app.Post("/register-token", ctrl.Register)
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/register-token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestRegister_Success(t *testing.T) {
	repo := &fakeRepo{}
	code, body := post(t, newApp(repo), `{"pmj_no":100,"token":"tok-1"}`)

	assert.Equal(t, 200, code)
	assert.Equal(t, true, body["success"])
	require.Len(t, repo.got, 1)
	assert.Equal(t, int64(100), repo.got[0].PmjNo)
	assert.Equal(t, "tok-1", repo.got[0].Token)
}

func TestRegister_MissingFields(t *testing.T) {
	repo := &fakeRepo{}
	code, body := post(t, newApp(repo), `{"token":"tok-1"}`)

	assert.Equal(t, 400, code)
	assert.Equal(t, "Missing pmj_no or token", body["error"])
	assert.Empty(t, repo.got)
}

func TestRegister_StoreFailure(t *testing.T) {
	code, body := post(t, newApp(&fakeRepo{err: errors.New("down")}), `{"pmj_no":1,"token":"x"}`)

	assert.Equal(t, 500, code)
	assert.Equal(t, "Failed to register token", body["error"])
}
