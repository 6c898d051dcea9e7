package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Member is one ledger entry. A member with PmjNo is a family head; a
// member with HeadPmjNo is a dependent of that head.
type Member struct {
	ID     uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AuthID *uuid.UUID `gorm:"column:auth_id;type:uuid;index" json:"auth_id,omitempty"`

	Name       string  `gorm:"column:name;type:varchar(150);not null" json:"name"`
	FatherName *string `gorm:"column:father_name;type:varchar(150)" json:"father_name,omitempty"`
	Address    *string `gorm:"column:address;type:text" json:"address,omitempty"`

	PmjNo     *int64 `gorm:"column:pmj_no;uniqueIndex" json:"pmj_no"`
	MrNo      int64  `gorm:"column:mr_no;not null;uniqueIndex" json:"mr_no"`
	HeadPmjNo *int64 `gorm:"column:head_pmj_no;index" json:"head_pmj_no"`

	// "NA" or a decimal string
	AnnualSubs string `gorm:"column:annual_subs;type:varchar(20);not null;default:'0'" json:"annual_subs"`
	Arrears    string `gorm:"column:arrears;type:varchar(20);not null;default:'0'" json:"arrears"`

	BookNo *string `gorm:"column:book_no;type:varchar(20)" json:"book_no,omitempty"`
	PageNo *string `gorm:"column:page_no;type:varchar(20)" json:"page_no,omitempty"`

	Status    string    `gorm:"column:status;type:varchar(10);not null;default:'active';index" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m Member) IsHead() bool {
	return m.PmjNo != nil
}
