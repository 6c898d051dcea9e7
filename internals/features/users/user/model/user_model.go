package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserModel is the portal's role table; the id is the auth provider's user id.
type UserModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email     *string   `gorm:"column:email;size:255" json:"email,omitempty"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u UserModel) IsAdmin() bool {
	return u.Role == RoleAdmin
}
