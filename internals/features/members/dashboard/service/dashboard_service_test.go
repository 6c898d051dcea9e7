package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jamath_backend/internals/databases/dbtest"
	paymentModel "jamath_backend/internals/features/finance/payments/model"
	paymentRepo "jamath_backend/internals/features/finance/payments/repository"
	noticeModel "jamath_backend/internals/features/home/notices/model"
	noticeRepo "jamath_backend/internals/features/home/notices/repository"
	memberModel "jamath_backend/internals/features/members/members/model"
	memberRepo "jamath_backend/internals/features/members/members/repository"
)

func i64(v int64) *int64 { return &v }

type fixture struct {
	svc      *DashboardService
	members  *memberRepo.MemberRepository
	payments *paymentRepo.PaymentRepository
	notices  *noticeRepo.NoticeRepository
	user     uuid.UUID
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := dbtest.SQLite(t, &memberModel.Member{}, &paymentModel.Payment{}, &noticeModel.Notice{}, &noticeModel.UserReadNotice{})
	f := fixture{
		members:  memberRepo.NewMemberRepository(db),
		payments: paymentRepo.NewPaymentRepository(db),
		notices:  noticeRepo.NewNoticeRepository(db),
		user:     uuid.New(),
	}
	f.svc = NewDashboardService(f.members, f.payments, f.notices)

	ctx := context.Background()
	require.NoError(t, f.members.Create(ctx, &memberModel.Member{
		AuthID: &f.user, Name: "Abdul Rahman", PmjNo: i64(100), MrNo: 1,
		AnnualSubs: "1250", Arrears: "300", Status: memberModel.StatusActive,
	}))
	require.NoError(t, f.members.Create(ctx, &memberModel.Member{
		Name: "Fathima", HeadPmjNo: i64(100), MrNo: 2,
		AnnualSubs: "200", Arrears: "NA", Status: memberModel.StatusActive,
	}))
	require.NoError(t, f.members.Create(ctx, &memberModel.Member{
		Name: "Yusuf", HeadPmjNo: i64(100), MrNo: 3,
		AnnualSubs: "200", Arrears: "50", Status: memberModel.StatusInactive,
	}))
	return f
}

func TestLoad_TotalsAndUnread(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		require.NoError(t, f.payments.Create(ctx, &paymentModel.Payment{
			BillNo: int64(i), PaymentDate: time.Date(2025, 1, i, 0, 0, 0, 0, time.UTC),
			PayerName: "Abdul Rahman", PmjNo: i64(100), Amount: 100, Purpose: "Annual",
		}))
	}
	var first *noticeModel.Notice
	for i := 0; i < 3; i++ {
		n := &noticeModel.Notice{Heading: "n", NoticeDate: time.Now()}
		require.NoError(t, f.notices.Create(ctx, n))
		if first == nil {
			first = n
		}
	}
	require.NoError(t, f.notices.MarkRead(ctx, f.user, first.ID))

	d, err := f.svc.Load(ctx, f.user)
	require.NoError(t, err)

	assert.Equal(t, "Abdul Rahman", d.Member.Name)
	assert.Len(t, d.Dependents, 2)
	assert.Equal(t, Totals{AnnualSubs: 1650, Arrears: 350}, d.Totals)
	require.Len(t, d.RecentPayments, RecentPayments)
	assert.Equal(t, int64(7), d.RecentPayments[0].BillNo)
	// 2 unread notices + 7 unread receipts
	assert.Equal(t, int64(9), d.UnreadCount)
}

func TestLoad_NoProfile(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoMemberProfile)
}

func TestFeed_MergesNewestFirst(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	n := &noticeModel.Notice{Heading: "Ramadan timings", Details: "d", NoticeDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, f.notices.Create(ctx, n))
	require.NoError(t, f.notices.MarkRead(ctx, f.user, n.ID))
	require.NoError(t, f.payments.Create(ctx, &paymentModel.Payment{
		BillNo: 40, PaymentDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		PayerName: "Abdul Rahman", PmjNo: i64(100), Amount: 500, Purpose: "Arrears",
	}))

	items, err := f.svc.Feed(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "payment", items[0].Kind)
	assert.Equal(t, "₹500 received. Bill No: 40", items[0].Body)
	assert.False(t, items[0].IsRead)
	assert.Equal(t, "notice", items[1].Kind)
	assert.True(t, items[1].IsRead)
}

func TestFamilyTotals_NegativeKept(t *testing.T) {
	head := memberModel.Member{AnnualSubs: "-100", Arrears: "abc"}
	assert.Equal(t, Totals{AnnualSubs: -100}, FamilyTotals(head, nil))
}
