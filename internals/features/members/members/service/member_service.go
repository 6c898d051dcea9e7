package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	memberDTO "jamath_backend/internals/features/members/members/dto"
	memberModel "jamath_backend/internals/features/members/members/model"
	authService "jamath_backend/internals/features/users/auth/service"
)

var (
	ErrNotFound     = errors.New("member not found")
	ErrAlreadyHead  = errors.New("member is already a family head")
	ErrDuplicatePmj = errors.New("pmj number already exists")
	ErrNoChanges    = errors.New("no fields to update")
)

// DuplicateMrNoError is returned when mr_no collides with an existing row.
type DuplicateMrNoError struct {
	MrNo int64
}

func (e *DuplicateMrNoError) Error() string {
	return fmt.Sprintf("MR Number %d already exists.", e.MrNo)
}

// AccountProvisioner manages login accounts for family heads.
type AccountProvisioner interface {
	CreateUser(ctx context.Context, email, password string) (uuid.UUID, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type memberStore interface {
	Create(ctx context.Context, m *memberModel.Member) error
	FindByID(ctx context.Context, id uuid.UUID) (*memberModel.Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error
	PromoteToHead(ctx context.Context, id, authID uuid.UUID, pmjNo int64) error
}

type MemberService struct {
	store       memberStore
	accounts    AccountProvisioner
	loginDomain string
	log         *zap.Logger
}

func NewMemberService(store memberStore, accounts AccountProvisioner, loginDomain string, log *zap.Logger) *MemberService {
	return &MemberService{store: store, accounts: accounts, loginDomain: loginDomain, log: log}
}

// LoginEmail is the account email of the family with pmjNo.
func (s *MemberService) LoginEmail(pmjNo int64) string {
	return fmt.Sprintf("%d@%s", pmjNo, s.loginDomain)
}

// LoginPassword is the initial password: 00<pmj_no>00<mr_no>.
func LoginPassword(pmjNo, mrNo int64) string {
	return "00" + strconv.FormatInt(pmjNo, 10) + "00" + strconv.FormatInt(mrNo, 10)
}

// Create inserts one member. Heads get a login account first; an account
// that already exists is tolerated and leaves auth_id empty.
func (s *MemberService) Create(ctx context.Context, req memberDTO.CreateMemberRequest) (*memberModel.Member, error) {
	m := toModel(req)

	if m.PmjNo != nil {
		id, err := s.accounts.CreateUser(ctx, s.LoginEmail(*m.PmjNo), LoginPassword(*m.PmjNo, m.MrNo))
		switch {
		case errors.Is(err, authService.ErrAlreadyRegistered):
			s.log.Info("auth account exists, linking skipped", zap.Int64("pmj_no", *m.PmjNo))
		case err != nil:
			return nil, fmt.Errorf("auth account for PMJ %d: %w", *m.PmjNo, err)
		default:
			m.AuthID = &id
		}
	}

	if err := s.store.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateMrNoError{MrNo: m.MrNo}
		}
		return nil, fmt.Errorf("insert MR %d: %w", m.MrNo, err)
	}
	return m, nil
}

// BulkCreate runs Create for every row and collects per-row failures.
func (s *MemberService) BulkCreate(ctx context.Context, rows []memberDTO.CreateMemberRequest) memberDTO.BulkResult {
	res := memberDTO.BulkResult{Errors: []string{}}
	for _, row := range rows {
		if _, err := s.Create(ctx, row); err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.Created++
	}
	return res
}

// Delete removes the login account (if linked) and then the member row.
func (s *MemberService) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if m.AuthID != nil {
		if err := s.accounts.DeleteUser(ctx, *m.AuthID); err != nil {
			return fmt.Errorf("delete auth account: %w", err)
		}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}

// Convert turns a dependent into the head of a new family. The account is
// removed again when the row cannot be updated.
func (s *MemberService) Convert(ctx context.Context, id uuid.UUID, req memberDTO.ConvertMemberRequest) error {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if m.IsHead() {
		return ErrAlreadyHead
	}

	authID, err := s.accounts.CreateUser(ctx, s.LoginEmail(req.NewPmjNo), LoginPassword(req.NewPmjNo, req.MrNo))
	if err != nil {
		return fmt.Errorf("create auth account: %w", err)
	}

	if err := s.store.PromoteToHead(ctx, id, authID, req.NewPmjNo); err != nil {
		if delErr := s.accounts.DeleteUser(ctx, authID); delErr != nil {
			s.log.Error("rollback of auth account failed",
				zap.String("auth_id", authID.String()), zap.Error(delErr))
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePmj
		}
		return fmt.Errorf("promote member: %w", err)
	}
	return nil
}

func toModel(req memberDTO.CreateMemberRequest) *memberModel.Member {
	m := &memberModel.Member{
		Name:       strings.TrimSpace(req.Name),
		FatherName: optional(req.FatherName),
		Address:    optional(req.Address),
		PmjNo:      req.PmjNo,
		MrNo:       req.MrNo,
		HeadPmjNo:  req.HeadPmjNo,
		AnnualSubs: orZero(req.AnnualSubs),
		Arrears:    orZero(req.Arrears),
		BookNo:     optional(req.BookNo),
		PageNo:     optional(req.PageNo),
		Status:     memberModel.StatusActive,
	}
	if req.Status == memberModel.StatusInactive {
		m.Status = memberModel.StatusInactive
	}
	return m
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func orZero(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "0"
	}
	return s
}

// Update edits the ledger fields of one member and returns the stored row.
// Family links and login accounts are not touched here.
func (s *MemberService) Update(ctx context.Context, id uuid.UUID, req memberDTO.UpdateMemberRequest) (*memberModel.Member, error) {
	changes := req.Changes()
	if len(changes) == 0 {
		return nil, ErrNoChanges
	}
	if err := s.store.Update(ctx, id, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update member: %w", err)
	}
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload member: %w", err)
	}
	return m, nil
}
