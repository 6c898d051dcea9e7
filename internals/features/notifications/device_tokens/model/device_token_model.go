package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeviceToken struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PmjNo      int64     `gorm:"column:pmj_no;not null;index" json:"pmj_no"`
	Token      string    `gorm:"column:token;type:text;not null;uniqueIndex" json:"token"`
	DeviceType string    `gorm:"column:device_type;type:varchar(20);not null;default:'web'" json:"device_type"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}

func (t *DeviceToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
