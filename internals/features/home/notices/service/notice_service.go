package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	noticeModel "jamath_backend/internals/features/home/notices/model"
	pushModel "jamath_backend/internals/features/notifications/push/model"
	pushService "jamath_backend/internals/features/notifications/push/service"
)

const (
	NoticeURL  = "/notifications"
	pushSource = "notice"
)

type noticeStore interface {
	Create(ctx context.Context, n *noticeModel.Notice) error
}

// DeviceTokens lists every registered device and removes dead ones.
type DeviceTokens interface {
	ListTokens(ctx context.Context) ([]string, error)
	DeleteByTokens(ctx context.Context, tokens []string) error
}

type Broadcaster interface {
	Broadcast(ctx context.Context, source string, msgs []pushModel.Message, deleter pushService.TokenDeleter) (pushService.Report, error)
}

type NoticeService struct {
	store  noticeStore
	tokens DeviceTokens
	push   Broadcaster
	log    *zap.Logger
}

func NewNoticeService(store noticeStore, tokens DeviceTokens, push Broadcaster, log *zap.Logger) *NoticeService {
	return &NoticeService{store: store, tokens: tokens, push: push, log: log}
}

// Publish saves the notice then pushes it to every device. Once the row is
// saved the call succeeds; broadcast problems are only logged.
func (s *NoticeService) Publish(ctx context.Context, n *noticeModel.Notice) error {
	if err := s.store.Create(ctx, n); err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}
	s.broadcast(ctx, n)
	return nil
}

func (s *NoticeService) broadcast(ctx context.Context, n *noticeModel.Notice) {
	tokens, err := s.tokens.ListTokens(ctx)
	if err != nil {
		s.log.Error("notice token lookup failed", zap.Error(err))
		return
	}
	if len(tokens) == 0 {
		return
	}

	msgs := make([]pushModel.Message, 0, len(tokens))
	for _, tok := range tokens {
		msgs = append(msgs, pushModel.Message{Token: tok, Title: n.Heading, Body: n.Details, URL: NoticeURL})
	}

	rep, err := s.push.Broadcast(ctx, pushSource, msgs, s.tokens)
	if err != nil {
		s.log.Error("notice broadcast failed", zap.String("notice_id", n.ID.String()), zap.Error(err))
		return
	}
	s.log.Info("notice broadcast",
		zap.String("notice_id", n.ID.String()),
		zap.Int("sent", rep.Sent),
		zap.Int("batches", rep.Batches),
		zap.Int("dead", len(rep.DeadTokens)))
}
