package dto

import (
	"time"

	"github.com/google/uuid"

	paymentModel "jamath_backend/internals/features/finance/payments/model"
)

type CreatePaymentRequest struct {
	BillNo      int64      `json:"bill_no" validate:"required,gt=0"`
	PaymentDate string     `json:"payment_date" validate:"required,datetime=2006-01-02"`
	MemberID    *uuid.UUID `json:"member_id"`
	PayerName   string     `json:"payer_name" validate:"required,max=150"`
	PmjNo       *int64     `json:"pmj_no" validate:"omitempty,gt=0"`
	MrNo        *int64     `json:"mr_no" validate:"omitempty,gt=0"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	PaymentMode string     `json:"payment_mode" validate:"omitempty,max=20"`
	Purpose     string     `json:"purpose" validate:"required,max=150"`
}

// ToModel assumes the request passed validation.
func (r CreatePaymentRequest) ToModel() *paymentModel.Payment {
	date, _ := time.Parse("2006-01-02", r.PaymentDate)
	mode := r.PaymentMode
	if mode == "" {
		mode = paymentModel.PaymentModeCash
	}
	return &paymentModel.Payment{
		BillNo:      r.BillNo,
		PaymentDate: date,
		MemberID:    r.MemberID,
		PayerName:   r.PayerName,
		PmjNo:       r.PmjNo,
		MrNo:        r.MrNo,
		Amount:      r.Amount,
		PaymentMode: mode,
		Purpose:     r.Purpose,
	}
}
