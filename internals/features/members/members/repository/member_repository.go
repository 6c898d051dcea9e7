package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	memberDTO "jamath_backend/internals/features/members/members/dto"
	memberModel "jamath_backend/internals/features/members/members/model"
)

// Due columns that may be projected by ListActiveDues.
const (
	DueAnnualSubs = "annual_subs"
	DueArrears    = "arrears"
)

// DueRow is an active member projected onto one due column.
type DueRow struct {
	Name      string
	PmjNo     *int64
	HeadPmjNo *int64
	Amount    *string
}

type MemberRepository struct {
	DB *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{DB: db}
}

func (r *MemberRepository) Create(ctx context.Context, m *memberModel.Member) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *MemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*memberModel.Member, error) {
	var m memberModel.Member
	if err := r.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) FindHeadByAuthID(ctx context.Context, authID uuid.UUID) (*memberModel.Member, error) {
	var m memberModel.Member
	err := r.DB.WithContext(ctx).
		Where("auth_id = ? AND pmj_no IS NOT NULL", authID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) ListDependents(ctx context.Context, pmjNo int64) ([]memberModel.Member, error) {
	var rows []memberModel.Member
	err := r.DB.WithContext(ctx).
		Where("head_pmj_no = ?", pmjNo).
		Order("mr_no ASC").
		Find(&rows).Error
	return rows, err
}

func (r *MemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&memberModel.Member{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Update applies column changes to one member.
func (r *MemberRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error {
	res := r.DB.WithContext(ctx).
		Model(&memberModel.Member{}).
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

// PromoteToHead links the member to a login account and makes them the head
// of a new family.
func (r *MemberRepository) PromoteToHead(ctx context.Context, id, authID uuid.UUID, pmjNo int64) error {
	res := r.DB.WithContext(ctx).
		Model(&memberModel.Member{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"auth_id":     authID,
			"pmj_no":      pmjNo,
			"head_pmj_no": gorm.Expr("NULL"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List filters by status and a free-text needle (name, mr_no or pmj_no),
// ordered by mr_no.
func (r *MemberRepository) List(ctx context.Context, q memberDTO.ListMembersQuery, offset, limit int) ([]memberModel.Member, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&memberModel.Member{})

	if s := strings.ToLower(strings.TrimSpace(q.Status)); s == memberModel.StatusActive || s == memberModel.StatusInactive {
		tx = tx.Where("status = ?", s)
	}
	if needle := strings.TrimSpace(q.Q); needle != "" {
		if n, err := strconv.ParseInt(needle, 10, 64); err == nil {
			tx = tx.Where("(LOWER(name) LIKE ? OR mr_no = ? OR pmj_no = ? OR head_pmj_no = ?)",
				"%"+strings.ToLower(needle)+"%", n, n, n)
		} else {
			tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(needle)+"%")
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []memberModel.Member
	q2 := tx.Order("mr_no ASC")
	if limit > 0 {
		q2 = q2.Offset(offset).Limit(limit)
	}
	if err := q2.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListActiveDues projects every active member onto one due column.
func (r *MemberRepository) ListActiveDues(ctx context.Context, column string) ([]DueRow, error) {
	if column != DueAnnualSubs && column != DueArrears {
		return nil, fmt.Errorf("unknown due column %q", column)
	}
	var rows []DueRow
	err := r.DB.WithContext(ctx).
		Model(&memberModel.Member{}).
		Select("name, pmj_no, head_pmj_no, "+column+" AS amount").
		Where("status = ?", memberModel.StatusActive).
		Scan(&rows).Error
	return rows, err
}
