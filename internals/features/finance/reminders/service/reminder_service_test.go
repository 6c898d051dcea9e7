package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jamath_backend/internals/databases/dbtest"
	memberRepo "jamath_backend/internals/features/members/members/repository"
	tokenModel "jamath_backend/internals/features/notifications/device_tokens/model"
	pushModel "jamath_backend/internals/features/notifications/push/model"
	pushService "jamath_backend/internals/features/notifications/push/service"
	"jamath_backend/internals/features/notifications/push/pushtest"
	logModel "jamath_backend/internals/features/system/logs/model"
	logRepo "jamath_backend/internals/features/system/logs/repository"
)

type memTokens struct {
	pushtest.FakeDeleter
	rows    []tokenModel.DeviceToken
	listErr error
	calls   int
}

func (m *memTokens) ListAll(context.Context) ([]tokenModel.DeviceToken, error) {
	m.calls++
	return m.rows, m.listErr
}

type memDues struct {
	rows    []memberRepo.DueRow
	err     error
	columns []string
}

func (m *memDues) ListActiveDues(_ context.Context, column string) ([]memberRepo.DueRow, error) {
	m.columns = append(m.columns, column)
	return m.rows, m.err
}

type memLogs struct {
	entries []logModel.SystemLog
}

func (m *memLogs) Append(_ context.Context, l *logModel.SystemLog) error {
	m.entries = append(m.entries, *l)
	return nil
}

func i64(v int64) *int64   { return &v }
func str(s string) *string { return &s }

func day(month time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(2025, month, d, 9, 0, 0, 0, time.UTC) }
}

type fixture struct {
	svc    *ReminderService
	tokens *memTokens
	dues   *memDues
	logs   *memLogs
	sender *pushtest.FakeSender
}

func newFixture(now func() time.Time) *fixture {
	f := &fixture{
		tokens: &memTokens{},
		dues:   &memDues{},
		logs:   &memLogs{},
		sender: pushtest.NewFakeSender(),
	}
	f.svc = NewReminderService(f.tokens, f.dues, f.logs, pushService.NewDispatcher(f.sender, zap.NewNop()), zap.NewNop())
	f.svc.Now = now
	return f
}

func TestReminderTypeFor(t *testing.T) {
	cases := []struct {
		when time.Time
		want ReminderType
		ok   bool
	}{
		{time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC), Annual, true},
		{time.Date(2031, 12, 28, 23, 59, 0, 0, time.UTC), Annual, true},
		{time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Arrears, true},
		{time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Arrears, true},
		{time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), Arrears, true},
		{time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), Arrears, true},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "", false},
		{time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "", false},
		{time.Date(2025, 12, 27, 0, 0, 0, 0, time.UTC), "", false},
		{time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), "", false},
		// 28 Dec 02:00 in UTC+5:30 is still 27 Dec in UTC
		{time.Date(2025, 12, 28, 2, 0, 0, 0, time.FixedZone("IST", 19800)), "", false},
	}
	for _, tc := range cases {
		got, ok := ReminderTypeFor(tc.when)
		assert.Equal(t, tc.ok, ok, tc.when.String())
		assert.Equal(t, tc.want, got, tc.when.String())
	}
}

func TestRun_NonTriggerDayTouchesNothing(t *testing.T) {
	f := newFixture(day(time.July, 15))

	res, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Scheduled)
	assert.Equal(t, MsgNothingScheduled, res.Message)
	assert.Zero(t, f.tokens.calls)
	assert.Empty(t, f.dues.columns)
	assert.Zero(t, f.sender.Calls())
	assert.Empty(t, f.logs.entries)
}

func TestRun_NoDevices(t *testing.T) {
	f := newFixture(day(time.December, 28))

	res, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MsgNoDevices, res.Message)
	assert.Empty(t, f.dues.columns)
	assert.Zero(t, f.sender.Calls())
	assert.Empty(t, f.logs.entries)
}

func TestRun_AnnualFamilyScenario(t *testing.T) {
	f := newFixture(day(time.December, 28))
	f.tokens.rows = []tokenModel.DeviceToken{
		{PmjNo: 100, Token: "phone"},
		{PmjNo: 100, Token: "tablet"},
	}
	f.dues.rows = []memberRepo.DueRow{
		{Name: "Aisha", HeadPmjNo: i64(100), Amount: str("NA")},
		{Name: "Abdul Rahman", PmjNo: i64(100), Amount: str("500")},
	}

	res, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"annual_subs"}, f.dues.columns)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, "Successfully sent annual reminders.", res.Message)

	sent := f.sender.Sent()
	require.Len(t, sent, 2)
	for _, m := range sent {
		assert.Equal(t, "Annual Subscription Due", m.Title)
		assert.Contains(t, m.Body, "₹500")
		assert.Contains(t, m.Body, "Abdul Rahman")
		assert.Equal(t, "/dashboard", m.URL)
	}
	assert.Equal(t,
		"Asalamu Alaikum Abdul Rahman, this is a gentle reminder that your total family annual subscription is ₹500. Please arrange to clear this soon. Jazakallah Khair.",
		sent[0].Body)
	assert.Empty(t, f.tokens.Deleted)

	require.Len(t, f.logs.entries, 1)
	entry := f.logs.entries[0]
	assert.Equal(t, "AUTOMATED_REMINDER_ANNUAL", entry.EventType)
	assert.Equal(t, logModel.StatusSuccess, entry.Status)
	assert.Equal(t, "Sent 2 annual reminders. Cleaned up 0 dead tokens.", entry.Message)
}

func TestRun_OrphanTokenGetsNothing(t *testing.T) {
	f := newFixture(day(time.March, 1))
	f.tokens.rows = []tokenModel.DeviceToken{{PmjNo: 200, Token: "lonely"}}
	f.dues.rows = []memberRepo.DueRow{{Name: "Other", PmjNo: i64(300), Amount: str("900")}}

	res, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MsgNoPendingDues, res.Message)
	assert.Equal(t, []string{"arrears"}, f.dues.columns)
	assert.Zero(t, f.sender.Calls())
	assert.Empty(t, f.tokens.Deleted)
	assert.Empty(t, f.logs.entries)
}

func TestRun_PrunesDeadToken(t *testing.T) {
	f := newFixture(day(time.June, 1))
	for i := 0; i < 500; i++ {
		f.tokens.rows = append(f.tokens.rows, tokenModel.DeviceToken{PmjNo: 1, Token: fmt.Sprintf("tok-%03d", i)})
	}
	f.dues.rows = []memberRepo.DueRow{{Name: "Head", PmjNo: i64(1), Amount: str("75.5")}}
	f.sender.Codes["tok-042"] = pushModel.CodeNotRegistered
	f.sender.Codes["tok-043"] = pushModel.CodeOther

	res, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 500, res.Sent)
	assert.Equal(t, 1, res.DeadTokens)
	assert.Equal(t, 1, f.sender.Calls())
	assert.Equal(t, [][]string{{"tok-042"}}, f.tokens.Deleted)

	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, "AUTOMATED_REMINDER_ARREARS", f.logs.entries[0].EventType)
	assert.True(t, strings.HasSuffix(f.logs.entries[0].Message, "Cleaned up 1 dead tokens."))
	assert.Contains(t, f.sender.Sent()[0].Body, "your total family arrears is ₹75.5")
}

func TestRun_BatchesByProviderLimit(t *testing.T) {
	for _, n := range []int{1, 499, 500, 501, 1000, 1201} {
		f := newFixture(day(time.December, 28))
		for i := 0; i < n; i++ {
			f.tokens.rows = append(f.tokens.rows, tokenModel.DeviceToken{PmjNo: 7, Token: fmt.Sprintf("t%d", i)})
		}
		f.dues.rows = []memberRepo.DueRow{{Name: "H", PmjNo: i64(7), Amount: str("10")}}

		res, err := f.svc.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, n, res.Sent)
		assert.Equal(t, (n+499)/500, f.sender.Calls(), "n=%d", n)
		for _, b := range f.sender.Batches {
			assert.LessOrEqual(t, len(b), 500)
		}
	}
}

func TestRun_ProviderFailureWritesErrorLog(t *testing.T) {
	f := newFixture(day(time.December, 28))
	f.tokens.rows = []tokenModel.DeviceToken{{PmjNo: 100, Token: "a"}}
	f.dues.rows = []memberRepo.DueRow{{Name: "H", PmjNo: i64(100), Amount: str("1")}}
	f.sender.Err = errors.New("quota exceeded")

	_, err := f.svc.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, f.tokens.Deleted)

	require.Len(t, f.logs.entries, 1)
	entry := f.logs.entries[0]
	assert.Equal(t, logModel.StatusError, entry.Status)
	assert.Equal(t, "AUTOMATED_REMINDER_ANNUAL", entry.EventType)
	assert.Equal(t, "Failed to send reminders: quota exceeded", entry.Message)
}

func TestRun_StoreFailureWritesErrorLog(t *testing.T) {
	f := newFixture(day(time.September, 1))
	f.tokens.listErr = errors.New("connection refused")

	_, err := f.svc.Run(context.Background())
	require.Error(t, err)
	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, "AUTOMATED_REMINDER_ARREARS", f.logs.entries[0].EventType)
	assert.Contains(t, f.logs.entries[0].Message, "connection refused")
}

func TestRun_SecondRunAfterPruneSkipsDeletedToken(t *testing.T) {
	f := newFixture(day(time.December, 28))
	f.tokens.rows = []tokenModel.DeviceToken{{PmjNo: 5, Token: "dead"}, {PmjNo: 5, Token: "alive"}}
	f.dues.rows = []memberRepo.DueRow{{Name: "H", PmjNo: i64(5), Amount: str("20")}}
	f.sender.Codes["dead"] = pushModel.CodeInvalidToken

	_, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, [][]string{{"dead"}}, f.tokens.Deleted)

	f.tokens.rows = []tokenModel.DeviceToken{{PmjNo: 5, Token: "alive"}}
	res, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Len(t, f.tokens.Deleted, 1)
}

func TestAggregateFamilies(t *testing.T) {
	tokens := []tokenModel.DeviceToken{{PmjNo: 1, Token: "a"}, {PmjNo: 2, Token: "b"}, {PmjNo: 1, Token: "c"}}
	dues := []memberRepo.DueRow{
		{Name: "Dep", HeadPmjNo: i64(1), Amount: str("200")},
		{Name: "Head One", PmjNo: i64(1), Amount: str("1250")},
		{Name: "Dep2", HeadPmjNo: i64(2), Amount: nil},
		{Name: "Nobody", Amount: str("99")},
		{Name: "Elsewhere", PmjNo: i64(9), Amount: str("99")},
	}

	fams := AggregateFamilies(tokens, dues)
	require.Len(t, fams, 2)
	assert.Equal(t, Family{Tokens: []string{"a", "c"}, Total: 1450, HeadName: "Head One"}, fams[1])
	assert.Equal(t, Family{Tokens: []string{"b"}, Total: 0, HeadName: DefaultHeadName}, fams[2])

	assert.Empty(t, BuildMessages(Annual, map[int64]Family{2: fams[2]}))
	assert.Len(t, BuildMessages(Annual, fams), 2)
}

func TestBuildMessages_NegativeTotalSendsNothing(t *testing.T) {
	fams := map[int64]Family{3: {Tokens: []string{"x"}, Total: -50, HeadName: "H"}}
	assert.Empty(t, BuildMessages(Arrears, fams))
}

type blockingDues struct{}

func (blockingDues) ListActiveDues(ctx context.Context, _ string) ([]memberRepo.DueRow, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRun_DeadlineStillWritesErrorLog(t *testing.T) {
	db := dbtest.SQLite(t, &logModel.SystemLog{})
	logs := logRepo.NewLogRepository(db)
	tokens := &memTokens{rows: []tokenModel.DeviceToken{{PmjNo: 100, Token: "a"}}}

	svc := NewReminderService(tokens, blockingDues{}, logs, pushService.NewDispatcher(pushtest.NewFakeSender(), zap.NewNop()), zap.NewNop())
	svc.Now = day(time.December, 28)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := svc.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	var rows []logModel.SystemLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, logModel.StatusError, rows[0].Status)
	assert.Equal(t, "AUTOMATED_REMINDER_ANNUAL", rows[0].EventType)
	assert.Contains(t, rows[0].Message, "Failed to send reminders: load member dues: context deadline exceeded")
}

func TestAggregateFamilies_ZeroPmjNoIsDependent(t *testing.T) {
	tokens := []tokenModel.DeviceToken{{PmjNo: 2, Token: "b"}}
	dues := []memberRepo.DueRow{
		{Name: "Stray Zero", PmjNo: i64(0), HeadPmjNo: i64(2), Amount: str("100")},
		{Name: "No Family", PmjNo: i64(0), Amount: str("999")},
	}

	fams := AggregateFamilies(tokens, dues)
	assert.Equal(t, Family{Tokens: []string{"b"}, Total: 100, HeadName: DefaultHeadName}, fams[2])
	assert.Len(t, fams, 1)
}
