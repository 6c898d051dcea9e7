package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrAlreadyRegistered = errors.New("auth account already registered")

type adminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type adminError struct {
	Code        any    `json:"code"`
	ErrorCode   string `json:"error_code"`
	Msg         string `json:"msg"`
	Message     string `json:"message"`
	Description string `json:"error_description"`
}

func (e adminError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.Description} {
		if s != "" {
			return s
		}
	}
	return "unknown error"
}

// SupabaseAdmin calls the GoTrue admin API with the service role key.
type SupabaseAdmin struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewSupabaseAdmin(baseURL, serviceRoleKey string, logger *zap.Logger) *SupabaseAdmin {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/auth/v1").
		SetTimeout(15*time.Second).
		SetHeader("apikey", serviceRoleKey).
		SetAuthToken(serviceRoleKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &SupabaseAdmin{httpClient: client, logger: logger}
}

// CreateUser creates a confirmed email/password account. An existing account
// yields ErrAlreadyRegistered.
func (s *SupabaseAdmin) CreateUser(ctx context.Context, email, password string) (uuid.UUID, error) {
	var (
		user    adminUser
		failure adminError
	)
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"email":         email,
			"password":      password,
			"email_confirm": true,
		}).
		SetResult(&user).
		SetError(&failure).
		Post("/admin/users")
	if err != nil {
		return uuid.Nil, fmt.Errorf("create auth user: %w", err)
	}

	if resp.IsError() {
		msg := failure.text()
		if failure.ErrorCode == "email_exists" || strings.Contains(strings.ToLower(msg), "already registered") || strings.Contains(strings.ToLower(msg), "already been registered") {
			return uuid.Nil, ErrAlreadyRegistered
		}
		s.logger.Warn("auth admin create failed",
			zap.String("email", email),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("msg", msg),
		)
		return uuid.Nil, fmt.Errorf("create auth user: %s", msg)
	}

	id, err := uuid.Parse(user.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create auth user: bad id %q: %w", user.ID, err)
	}
	return id, nil
}

func (s *SupabaseAdmin) DeleteUser(ctx context.Context, id uuid.UUID) error {
	var failure adminError
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetError(&failure).
		Delete("/admin/users/" + id.String())
	if err != nil {
		return fmt.Errorf("delete auth user: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete auth user: %s", failure.text())
	}
	return nil
}
