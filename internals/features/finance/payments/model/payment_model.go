package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentModeCash   = "Cash"
	PaymentModeUPI    = "UPI"
	PaymentModeBank   = "Bank"
	PaymentModeCheque = "Cheque"
)

// Payment is one receipt entered by the office. PmjNo is set when the payer
// is a registered family.
type Payment struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BillNo      int64      `gorm:"column:bill_no;not null;uniqueIndex" json:"bill_no"`
	PaymentDate time.Time  `gorm:"column:payment_date;type:date;not null;index" json:"payment_date"`
	MemberID    *uuid.UUID `gorm:"column:member_id;type:uuid;index" json:"member_id,omitempty"`
	PayerName   string     `gorm:"column:payer_name;type:varchar(150);not null" json:"payer_name"`
	PmjNo       *int64     `gorm:"column:pmj_no;index" json:"pmj_no,omitempty"`
	MrNo        *int64     `gorm:"column:mr_no" json:"mr_no,omitempty"`
	Amount      float64    `gorm:"column:amount;not null" json:"amount"`
	PaymentMode string     `gorm:"column:payment_mode;type:varchar(20);not null;default:'Cash'" json:"payment_mode"`
	Purpose     string     `gorm:"column:purpose;type:varchar(150);not null" json:"purpose"`
	IsRead      bool       `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
