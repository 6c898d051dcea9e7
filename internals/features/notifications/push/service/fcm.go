package service

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	pushModel "jamath_backend/internals/features/notifications/push/model"
)

// MaxBatchSize is the provider's per-call message limit.
const MaxBatchSize = 500

// Sender delivers a batch of messages and reports a result per message.
type Sender interface {
	SendEach(ctx context.Context, msgs []pushModel.Message) ([]pushModel.Result, error)
}

type messagingClient interface {
	SendEach(ctx context.Context, messages []*messaging.Message) (*messaging.BatchResponse, error)
}

// FCMSender sends through Firebase Cloud Messaging.
type FCMSender struct {
	client messagingClient
}

// NewFCMSender initialises a Firebase app from a service-account JSON document.
func NewFCMSender(ctx context.Context, serviceAccountJSON string) (*FCMSender, error) {
	if serviceAccountJSON == "" {
		return nil, errors.New("firebase service account is empty")
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}
	return &FCMSender{client: client}, nil
}

func (s *FCMSender) SendEach(ctx context.Context, msgs []pushModel.Message) ([]pushModel.Result, error) {
	if len(msgs) > MaxBatchSize {
		return nil, fmt.Errorf("fcm: batch of %d exceeds %d", len(msgs), MaxBatchSize)
	}
	out := make([]*messaging.Message, len(msgs))
	for i, m := range msgs {
		out[i] = &messaging.Message{
			Token: m.Token,
			Notification: &messaging.Notification{
				Title: m.Title,
				Body:  m.Body,
			},
			Data: map[string]string{"url": m.URL},
		}
	}

	resp, err := s.client.SendEach(ctx, out)
	if err != nil {
		return nil, fmt.Errorf("fcm send: %w", err)
	}

	results := make([]pushModel.Result, len(resp.Responses))
	for i, r := range resp.Responses {
		if r.Success {
			results[i] = pushModel.Result{Success: true, MessageID: r.MessageID}
			continue
		}
		results[i] = pushModel.Result{ErrorCode: classify(r.Error)}
	}
	return results, nil
}

// Message payloads are built server side, so an invalid-argument reply
// can only come from the token.
func classify(err error) string {
	switch {
	case err == nil:
		return pushModel.CodeOther
	case messaging.IsUnregistered(err):
		return pushModel.CodeNotRegistered
	case messaging.IsInvalidArgument(err):
		return pushModel.CodeInvalidToken
	default:
		return pushModel.CodeOther
	}
}

var ErrPushDisabled = errors.New("push delivery is not configured")

// DisabledSender stands in when no Firebase credentials are configured;
// every send fails so jobs log the problem instead of silently succeeding.
type DisabledSender struct{}

func (DisabledSender) SendEach(context.Context, []pushModel.Message) ([]pushModel.Result, error) {
	return nil, ErrPushDisabled
}
