package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "jamath_backend/internals/features/finance/payments/model"
	noticeModel "jamath_backend/internals/features/home/notices/model"
	memberModel "jamath_backend/internals/features/members/members/model"
	helper "jamath_backend/internals/helpers"
)

const RecentPayments = 5

var ErrNoMemberProfile = errors.New("member profile not found")

type memberReader interface {
	FindHeadByAuthID(ctx context.Context, authID uuid.UUID) (*memberModel.Member, error)
	ListDependents(ctx context.Context, pmjNo int64) ([]memberModel.Member, error)
}

type paymentReader interface {
	ListByFamily(ctx context.Context, pmjNo int64, limit int) ([]paymentModel.Payment, error)
	CountUnread(ctx context.Context, pmjNo int64) (int64, error)
}

type noticeReader interface {
	List(ctx context.Context, limit int) ([]noticeModel.Notice, error)
	Count(ctx context.Context) (int64, error)
	CountRead(ctx context.Context, userID uuid.UUID) (int64, error)
	ReadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type Totals struct {
	AnnualSubs float64 `json:"annual_subs"`
	Arrears    float64 `json:"arrears"`
}

type Dashboard struct {
	Member         memberModel.Member     `json:"member"`
	Dependents     []memberModel.Member   `json:"dependents"`
	Totals         Totals                 `json:"totals"`
	RecentPayments []paymentModel.Payment `json:"recent_payments"`
	UnreadCount    int64                  `json:"unread_count"`
}

// FeedItem is one entry of the member notification feed.
type FeedItem struct {
	Kind    string                `json:"kind"`
	ID      uuid.UUID             `json:"id"`
	Title   string                `json:"title"`
	Body    string                `json:"body"`
	Date    time.Time             `json:"date"`
	IsRead  bool                  `json:"is_read"`
	Payment *paymentModel.Payment `json:"payment,omitempty"`
}

type DashboardService struct {
	members  memberReader
	payments paymentReader
	notices  noticeReader
}

func NewDashboardService(members memberReader, payments paymentReader, notices noticeReader) *DashboardService {
	return &DashboardService{members: members, payments: payments, notices: notices}
}

func (s *DashboardService) head(ctx context.Context, userID uuid.UUID) (*memberModel.Member, error) {
	m, err := s.members.FindHeadByAuthID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoMemberProfile
		}
		return nil, fmt.Errorf("load member: %w", err)
	}
	return m, nil
}

// FamilyTotals sums head and dependents with the ledger amount parser.
func FamilyTotals(head memberModel.Member, deps []memberModel.Member) Totals {
	t := Totals{
		AnnualSubs: helper.AmountOf(head.AnnualSubs).Value(),
		Arrears:    helper.AmountOf(head.Arrears).Value(),
	}
	for _, d := range deps {
		t.AnnualSubs += helper.AmountOf(d.AnnualSubs).Value()
		t.Arrears += helper.AmountOf(d.Arrears).Value()
	}
	return t
}

// Load builds the dashboard for the head signed in as userID.
func (s *DashboardService) Load(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	head, err := s.head(ctx, userID)
	if err != nil {
		return nil, err
	}
	pmj := *head.PmjNo

	deps, err := s.members.ListDependents(ctx, pmj)
	if err != nil {
		return nil, fmt.Errorf("load dependents: %w", err)
	}
	payments, err := s.payments.ListByFamily(ctx, pmj, RecentPayments)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	unread, err := s.unreadCount(ctx, userID, pmj)
	if err != nil {
		return nil, err
	}

	if deps == nil {
		deps = []memberModel.Member{}
	}
	if payments == nil {
		payments = []paymentModel.Payment{}
	}
	return &Dashboard{
		Member:         *head,
		Dependents:     deps,
		Totals:         FamilyTotals(*head, deps),
		RecentPayments: payments,
		UnreadCount:    unread,
	}, nil
}

func (s *DashboardService) unreadCount(ctx context.Context, userID uuid.UUID, pmj int64) (int64, error) {
	total, err := s.notices.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count notices: %w", err)
	}
	read, err := s.notices.CountRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count read notices: %w", err)
	}
	personal, err := s.payments.CountUnread(ctx, pmj)
	if err != nil {
		return 0, fmt.Errorf("count unread payments: %w", err)
	}

	global := total - read
	if global < 0 {
		global = 0
	}
	return global + personal, nil
}

// Feed merges notices and family receipts, newest first.
func (s *DashboardService) Feed(ctx context.Context, userID uuid.UUID) ([]FeedItem, error) {
	head, err := s.head(ctx, userID)
	if err != nil {
		return nil, err
	}

	notices, err := s.notices.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("load notices: %w", err)
	}
	readIDs, err := s.notices.ReadIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load read notices: %w", err)
	}
	payments, err := s.payments.ListByFamily(ctx, *head.PmjNo, 0)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	read := make(map[uuid.UUID]struct{}, len(readIDs))
	for _, id := range readIDs {
		read[id] = struct{}{}
	}

	items := make([]FeedItem, 0, len(notices)+len(payments))
	for _, n := range notices {
		_, seen := read[n.ID]
		items = append(items, FeedItem{
			Kind: "notice", ID: n.ID, Title: n.Heading, Body: n.Details,
			Date: n.NoticeDate, IsRead: seen,
		})
	}
	for i := range payments {
		p := payments[i]
		items = append(items, FeedItem{
			Kind: "payment", ID: p.ID, Title: p.Purpose,
			Body: fmt.Sprintf("₹%s received. Bill No: %d", helper.FormatAmount(p.Amount), p.BillNo),
			Date: p.PaymentDate, IsRead: p.IsRead, Payment: &p,
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return items, nil
}
