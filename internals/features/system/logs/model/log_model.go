package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// SystemLog is an append-only record of one batch job outcome.
type SystemLog struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EventType string            `gorm:"column:event_type;type:varchar(64);not null;index" json:"event_type"`
	Status    string            `gorm:"column:status;type:varchar(10);not null" json:"status"`
	Message   string            `gorm:"column:message;type:text" json:"message"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (SystemLog) TableName() string {
	return "logs"
}

func (l *SystemLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
