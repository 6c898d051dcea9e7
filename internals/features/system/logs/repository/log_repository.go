package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	logModel "jamath_backend/internals/features/system/logs/model"
)

const DefaultListLimit = 200

type ListFilter struct {
	Status    string
	EventType string
	Limit     int
}

type LogRepository struct {
	DB *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{DB: db}
}

func (r *LogRepository) Append(ctx context.Context, entry *logModel.SystemLog) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

// List returns the newest entries first.
func (r *LogRepository) List(ctx context.Context, f ListFilter) ([]logModel.SystemLog, error) {
	limit := f.Limit
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	tx := r.DB.WithContext(ctx).Model(&logModel.SystemLog{})
	if s := strings.ToUpper(strings.TrimSpace(f.Status)); s != "" && s != "ALL" {
		tx = tx.Where("status = ?", s)
	}
	if et := strings.TrimSpace(f.EventType); et != "" && !strings.EqualFold(et, "ALL") {
		tx = tx.Where("event_type = ?", et)
	}

	var rows []logModel.SystemLog
	err := tx.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *LogRepository) EventTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := r.DB.WithContext(ctx).
		Model(&logModel.SystemLog{}).
		Distinct("event_type").
		Order("event_type").
		Pluck("event_type", &types).Error
	return types, err
}
