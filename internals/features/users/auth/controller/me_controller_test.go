package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	memberModel "jamath_backend/internals/features/members/members/model"
)

type heads map[uuid.UUID]*memberModel.Member

func (h heads) FindHeadByAuthID(_ context.Context, id uuid.UUID) (*memberModel.Member, error) {
	if m, ok := h[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func get(t *testing.T, h heads, userID uuid.UUID, role string) map[string]any {
	t.Helper()
	app := fiber.New()
	app.Get("/me", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		c.Locals("userRole", role)
		return c.Next()
	}, NewMeController(h).Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out["data"].(map[string]any)
}

func TestMe(t *testing.T) {
	head := uuid.New()
	pmj := int64(100)
	h := heads{head: {Name: "Abdul Rahman", PmjNo: &pmj, MrNo: 1}}

	data := get(t, h, head, "user")
	assert.Equal(t, "user", data["role"])
	assert.Equal(t, "Abdul Rahman", data["member"].(map[string]any)["name"])

	data = get(t, h, uuid.New(), "admin")
	assert.Equal(t, "admin", data["role"])
	assert.Nil(t, data["member"])
}
