package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	noticeModel "jamath_backend/internals/features/home/notices/model"
)

const PublicListLimit = 50

type NoticeRepository struct {
	DB *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) *NoticeRepository {
	return &NoticeRepository{DB: db}
}

func (r *NoticeRepository) Create(ctx context.Context, n *noticeModel.Notice) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *NoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&noticeModel.Notice{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NoticeRepository) FindByID(ctx context.Context, id uuid.UUID) (*noticeModel.Notice, error) {
	var n noticeModel.Notice
	if err := r.DB.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NoticeRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error {
	res := r.DB.WithContext(ctx).
		Model(&noticeModel.Notice{}).
		Where("id = ?", id).
		Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns notices newest first; limit 0 means all.
func (r *NoticeRepository) List(ctx context.Context, limit int) ([]noticeModel.Notice, error) {
	q := r.DB.WithContext(ctx).Order("notice_date DESC").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []noticeModel.Notice
	err := q.Find(&rows).Error
	return rows, err
}

func (r *NoticeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&noticeModel.Notice{}).Count(&n).Error
	return n, err
}

// MarkRead is idempotent per (user, notice).
func (r *NoticeRepository) MarkRead(ctx context.Context, userID, noticeID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&noticeModel.UserReadNotice{UserID: userID, NoticeID: noticeID}).Error
}

func (r *NoticeRepository) CountRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&noticeModel.UserReadNotice{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

// ReadIDs returns the notices a user has already seen.
func (r *NoticeRepository) ReadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB.WithContext(ctx).
		Model(&noticeModel.UserReadNotice{}).
		Where("user_id = ?", userID).
		Pluck("notice_id", &ids).Error
	return ids, err
}
