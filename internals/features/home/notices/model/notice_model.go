package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notice struct {
	ID          uuid.UUID `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Heading     string    `gorm:"column:heading;type:varchar(255);not null" json:"heading"`
	Details     string    `gorm:"column:details;type:text" json:"details"`
	NoticeDate  time.Time `gorm:"column:notice_date;type:date;not null" json:"notice_date"`
	ConfirmedBy string    `gorm:"column:confirmed_by;type:varchar(150)" json:"confirmed_by"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notice) TableName() string {
	return "notices"
}

func (n *Notice) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// UserReadNotice marks a notice as seen by one user.
type UserReadNotice struct {
	UserID   uuid.UUID `gorm:"column:user_id;primaryKey;type:uuid" json:"user_id"`
	NoticeID uuid.UUID `gorm:"column:notice_id;primaryKey;type:uuid" json:"notice_id"`
	ReadAt   time.Time `gorm:"column:read_at;autoCreateTime" json:"read_at"`
}

func (UserReadNotice) TableName() string {
	return "user_read_notices"
}
