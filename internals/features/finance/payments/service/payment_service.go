package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	paymentModel "jamath_backend/internals/features/finance/payments/model"
	pushModel "jamath_backend/internals/features/notifications/push/model"
	pushService "jamath_backend/internals/features/notifications/push/service"
	helper "jamath_backend/internals/helpers"
)

var ErrDuplicateBill = errors.New("bill number already exists")

const (
	ReceiptTitle = "Payment Receipt"
	ReceiptURL   = "/notifications"
	pushSource   = "payment_receipt"
)

type paymentStore interface {
	Create(ctx context.Context, p *paymentModel.Payment) error
}

// FamilyTokens resolves the devices of one family and removes dead ones.
type FamilyTokens interface {
	ListTokensByPmjNo(ctx context.Context, pmjNo int64) ([]string, error)
	DeleteByTokens(ctx context.Context, tokens []string) error
}

type Broadcaster interface {
	Broadcast(ctx context.Context, source string, msgs []pushModel.Message, deleter pushService.TokenDeleter) (pushService.Report, error)
}

type PaymentService struct {
	store  paymentStore
	tokens FamilyTokens
	push   Broadcaster
	log    *zap.Logger
}

func NewPaymentService(store paymentStore, tokens FamilyTokens, push Broadcaster, log *zap.Logger) *PaymentService {
	return &PaymentService{store: store, tokens: tokens, push: push, log: log}
}

// ReceiptBody is the push text for a recorded payment.
func ReceiptBody(p *paymentModel.Payment) string {
	return fmt.Sprintf("Jazakallah Khair! We received ₹%s for %s. Bill No: %s",
		helper.FormatAmount(p.Amount), p.Purpose, strconv.FormatInt(p.BillNo, 10))
}

// Record saves the payment and, for family payments, pushes a receipt to the
// family's devices. Push problems are logged and never fail the call.
func (s *PaymentService) Record(ctx context.Context, p *paymentModel.Payment) error {
	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateBill
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	if p.PmjNo != nil {
		s.sendReceipt(ctx, p)
	}
	return nil
}

func (s *PaymentService) sendReceipt(ctx context.Context, p *paymentModel.Payment) {
	tokens, err := s.tokens.ListTokensByPmjNo(ctx, *p.PmjNo)
	if err != nil {
		s.log.Error("receipt token lookup failed", zap.Int64("pmj_no", *p.PmjNo), zap.Error(err))
		return
	}
	if len(tokens) == 0 {
		return
	}

	body := ReceiptBody(p)
	msgs := make([]pushModel.Message, 0, len(tokens))
	for _, tok := range tokens {
		msgs = append(msgs, pushModel.Message{Token: tok, Title: ReceiptTitle, Body: body, URL: ReceiptURL})
	}

	rep, err := s.push.Broadcast(ctx, pushSource, msgs, s.tokens)
	if err != nil {
		s.log.Error("payment receipt push failed",
			zap.Int64("pmj_no", *p.PmjNo), zap.Int64("bill_no", p.BillNo), zap.Error(err))
		return
	}
	s.log.Info("payment receipt pushed",
		zap.Int64("pmj_no", *p.PmjNo), zap.Int("sent", rep.Sent), zap.Int("dead", len(rep.DeadTokens)))
}
