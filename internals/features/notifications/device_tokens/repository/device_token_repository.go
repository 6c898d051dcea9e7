package repository

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	tokenModel "jamath_backend/internals/features/notifications/device_tokens/model"
)

type DeviceTokenRepository struct {
	DB *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{DB: db}
}

// Upsert registers a token, moving it to the given family if it already exists.
func (r *DeviceTokenRepository) Upsert(ctx context.Context, t *tokenModel.DeviceToken) error {
	if t.DeviceType == "" {
		t.DeviceType = "web"
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"pmj_no", "device_type", "updated_at"}),
		}).
		Create(t).Error
}

// ListAll returns every registration (family key and token only).
func (r *DeviceTokenRepository) ListAll(ctx context.Context) ([]tokenModel.DeviceToken, error) {
	var rows []tokenModel.DeviceToken
	err := r.DB.WithContext(ctx).
		Model(&tokenModel.DeviceToken{}).
		Select("pmj_no", "token").
		Find(&rows).Error
	return rows, err
}

// ListTokens returns all token strings.
func (r *DeviceTokenRepository) ListTokens(ctx context.Context) ([]string, error) {
	var tokens []string
	err := r.DB.WithContext(ctx).
		Model(&tokenModel.DeviceToken{}).
		Pluck("token", &tokens).Error
	return tokens, err
}

// ListTokensByPmjNo returns the tokens registered for one family.
func (r *DeviceTokenRepository) ListTokensByPmjNo(ctx context.Context, pmjNo int64) ([]string, error) {
	var tokens []string
	err := r.DB.WithContext(ctx).
		Model(&tokenModel.DeviceToken{}).
		Where("pmj_no = ?", pmjNo).
		Pluck("token", &tokens).Error
	return tokens, err
}

// DeleteByTokens removes registrations by exact token value in one statement.
// Missing tokens are ignored.
func (r *DeviceTokenRepository) DeleteByTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Exec("DELETE FROM device_tokens WHERE token = ANY(?)", pq.Array(tokens)).Error
}
