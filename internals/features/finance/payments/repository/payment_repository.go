package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "jamath_backend/internals/features/finance/payments/model"
)

const AdminListLimit = 100

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *paymentModel.Payment) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// ListRecent returns the newest payments by entry time.
func (r *PaymentRepository) ListRecent(ctx context.Context, limit int) ([]paymentModel.Payment, error) {
	if limit <= 0 {
		limit = AdminListLimit
	}
	var rows []paymentModel.Payment
	err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

// ListByFamily returns a family's payments, latest payment date first.
// limit 0 means all.
func (r *PaymentRepository) ListByFamily(ctx context.Context, pmjNo int64, limit int) ([]paymentModel.Payment, error) {
	q := r.DB.WithContext(ctx).
		Where("pmj_no = ?", pmjNo).
		Order("payment_date DESC").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []paymentModel.Payment
	err := q.Find(&rows).Error
	return rows, err
}

func (r *PaymentRepository) CountUnread(ctx context.Context, pmjNo int64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&paymentModel.Payment{}).
		Where("pmj_no = ? AND is_read = ?", pmjNo, false).
		Count(&n).Error
	return n, err
}

// MarkRead flags a payment of the given family as read.
func (r *PaymentRepository) MarkRead(ctx context.Context, id uuid.UUID, pmjNo int64) error {
	res := r.DB.WithContext(ctx).
		Model(&paymentModel.Payment{}).
		Where("id = ? AND pmj_no = ?", id, pmjNo).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
