package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	prayerModel "jamath_backend/internals/features/prayer/settings/model"
)

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// Get returns the saved settings, or the defaults when none were saved.
func (r *SettingsRepository) Get(ctx context.Context) (prayerModel.PrayerSettings, error) {
	var s prayerModel.PrayerSettings
	err := r.DB.WithContext(ctx).First(&s, "id = ?", prayerModel.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return prayerModel.Defaults(), nil
	}
	return s, err
}

func (r *SettingsRepository) Save(ctx context.Context, s *prayerModel.PrayerSettings) error {
	s.ID = prayerModel.SettingsID
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(s).Error
}
