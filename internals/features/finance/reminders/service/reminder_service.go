package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	memberRepo "jamath_backend/internals/features/members/members/repository"
	tokenModel "jamath_backend/internals/features/notifications/device_tokens/model"
	pushModel "jamath_backend/internals/features/notifications/push/model"
	pushService "jamath_backend/internals/features/notifications/push/service"
	logModel "jamath_backend/internals/features/system/logs/model"
	helper "jamath_backend/internals/helpers"
	"jamath_backend/internals/helpers/metrics"
)

const (
	MsgNothingScheduled = "No reminders scheduled for today. Sleeping until tomorrow."
	MsgNoDevices        = "No devices registered in the database."
	MsgNoPendingDues    = "No pending dues found for registered devices."

	DefaultHeadName = "Family Head"
	ReminderURL     = "/dashboard"

	jobName = "reminders"
)

// ReminderType selects which due column a run reports on.
type ReminderType string

const (
	Annual  ReminderType = "annual"
	Arrears ReminderType = "arrears"
)

// Column is the member due field summed for this type.
func (t ReminderType) Column() string {
	if t == Annual {
		return memberRepo.DueAnnualSubs
	}
	return memberRepo.DueArrears
}

func (t ReminderType) Title() string {
	if t == Annual {
		return "Annual Subscription Due"
	}
	return "Pending Arrears Reminder"
}

func (t ReminderType) label() string {
	if t == Annual {
		return "annual subscription"
	}
	return "arrears"
}

// EventType is the log tag; an empty type logs as UNKNOWN.
func (t ReminderType) EventType() string {
	if t == "" {
		return "AUTOMATED_REMINDER_UNKNOWN"
	}
	return "AUTOMATED_REMINDER_" + strings.ToUpper(string(t))
}

// ReminderTypeFor gates runs by UTC calendar date: Dec 28 is annual, the
// 1st of Mar/Jun/Sep/Dec is arrears, every other day is nothing.
func ReminderTypeFor(now time.Time) (ReminderType, bool) {
	now = now.UTC()
	month, day := now.Month(), now.Day()
	switch {
	case month == time.December && day == 28:
		return Annual, true
	case day == 1 && (month == time.March || month == time.June || month == time.September || month == time.December):
		return Arrears, true
	}
	return "", false
}

// Family is the per-household accumulator keyed by pmj_no.
type Family struct {
	Tokens   []string
	Total    float64
	HeadName string
}

// AggregateFamilies folds device registrations and active dues into a fresh
// map of family buckets. Only families with at least one token get a bucket;
// members of other families are skipped.
func AggregateFamilies(tokens []tokenModel.DeviceToken, dues []memberRepo.DueRow) map[int64]Family {
	out := make(map[int64]Family)
	for _, t := range tokens {
		fam, ok := out[t.PmjNo]
		if !ok {
			fam = Family{HeadName: DefaultHeadName}
		}
		fam.Tokens = append(fam.Tokens, t.Token)
		out[t.PmjNo] = fam
	}

	for _, row := range dues {
		key, head, ok := familyKey(row)
		if !ok {
			continue
		}
		fam, ok := out[key]
		if !ok {
			continue
		}
		fam.Total += helper.ParseAmount(row.Amount)
		if head {
			fam.HeadName = row.Name
		}
		out[key] = fam
	}
	return out
}

// familyKey is pmj_no for heads and head_pmj_no for dependents. A zero
// pmj_no counts as unset.
func familyKey(row memberRepo.DueRow) (key int64, head bool, ok bool) {
	if row.PmjNo != nil && *row.PmjNo != 0 {
		return *row.PmjNo, true, true
	}
	if row.HeadPmjNo != nil && *row.HeadPmjNo != 0 {
		return *row.HeadPmjNo, false, true
	}
	return 0, false, false
}

// ReminderBody renders the personalised text for one family.
func ReminderBody(t ReminderType, headName string, total float64) string {
	return fmt.Sprintf("Asalamu Alaikum %s, this is a gentle reminder that your total family %s is ₹%s. Please arrange to clear this soon. Jazakallah Khair.",
		headName, t.label(), helper.FormatAmount(total))
}

// BuildMessages makes one message per device for every family that owes a
// positive total, ordered by pmj_no.
func BuildMessages(t ReminderType, families map[int64]Family) []pushModel.Message {
	keys := make([]int64, 0, len(families))
	for k := range families {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var msgs []pushModel.Message
	for _, k := range keys {
		fam := families[k]
		if fam.Total <= 0 || len(fam.Tokens) == 0 {
			continue
		}
		body := ReminderBody(t, fam.HeadName, fam.Total)
		for _, tok := range fam.Tokens {
			msgs = append(msgs, pushModel.Message{Token: tok, Title: t.Title(), Body: body, URL: ReminderURL})
		}
	}
	return msgs
}

/* ===================== collaborators ===================== */

type TokenStore interface {
	ListAll(ctx context.Context) ([]tokenModel.DeviceToken, error)
	DeleteByTokens(ctx context.Context, tokens []string) error
}

type DueStore interface {
	ListActiveDues(ctx context.Context, column string) ([]memberRepo.DueRow, error)
}

type LogWriter interface {
	Append(ctx context.Context, l *logModel.SystemLog) error
}

type Dispatcher interface {
	Dispatch(ctx context.Context, source string, msgs []pushModel.Message) (pushService.Report, error)
	Prune(ctx context.Context, deleter pushService.TokenDeleter, rep pushService.Report) error
}

// Result is what a run reports back to the trigger.
type Result struct {
	Type       ReminderType
	Scheduled  bool
	Sent       int
	DeadTokens int
	Message    string
}

type ReminderService struct {
	Tokens     TokenStore
	Dues       DueStore
	Logs       LogWriter
	Dispatcher Dispatcher
	Now        func() time.Time
	Log        *zap.Logger
}

func NewReminderService(tokens TokenStore, dues DueStore, logs LogWriter, d Dispatcher, log *zap.Logger) *ReminderService {
	return &ReminderService{
		Tokens:     tokens,
		Dues:       dues,
		Logs:       logs,
		Dispatcher: d,
		Now:        time.Now,
		Log:        log.Named(jobName),
	}
}

// Run executes today's reminder job, if any. Failures are written to the
// log table once and returned.
func (s *ReminderService) Run(ctx context.Context) (Result, error) {
	t, ok := ReminderTypeFor(s.Now())
	if !ok {
		s.Log.Info("no reminder scheduled today")
		return Result{Message: MsgNothingScheduled}, nil
	}

	res, err := s.send(ctx, t)
	metrics.ObserveJob(jobName, err)
	if err != nil {
		s.Log.Error("reminder run failed", zap.String("type", string(t)), zap.Error(err))
		s.appendLog(ctx, &logModel.SystemLog{
			EventType: t.EventType(),
			Status:    logModel.StatusError,
			Message:   "Failed to send reminders: " + err.Error(),
		})
		return res, err
	}
	return res, nil
}

func (s *ReminderService) send(ctx context.Context, t ReminderType) (Result, error) {
	res := Result{Type: t, Scheduled: true}

	tokens, err := s.Tokens.ListAll(ctx)
	if err != nil {
		return res, fmt.Errorf("load device tokens: %w", err)
	}
	if len(tokens) == 0 {
		res.Message = MsgNoDevices
		return res, nil
	}

	dues, err := s.Dues.ListActiveDues(ctx, t.Column())
	if err != nil {
		return res, fmt.Errorf("load member dues: %w", err)
	}

	msgs := BuildMessages(t, AggregateFamilies(tokens, dues))
	if len(msgs) == 0 {
		res.Message = MsgNoPendingDues
		return res, nil
	}

	rep, err := s.Dispatcher.Dispatch(ctx, jobName, msgs)
	if err != nil {
		return res, err
	}
	if err := s.Dispatcher.Prune(ctx, s.Tokens, rep); err != nil {
		return res, err
	}

	res.Sent = len(msgs)
	res.DeadTokens = len(rep.DeadTokens)
	res.Message = fmt.Sprintf("Successfully sent %s reminders.", t)

	s.appendLog(ctx, &logModel.SystemLog{
		EventType: t.EventType(),
		Status:    logModel.StatusSuccess,
		Message:   fmt.Sprintf("Sent %d %s reminders. Cleaned up %d dead tokens.", res.Sent, t, res.DeadTokens),
		Metadata: map[string]interface{}{
			"sent":        res.Sent,
			"batches":     rep.Batches,
			"dead_tokens": res.DeadTokens,
		},
	})
	s.Log.Info("reminders sent",
		zap.String("type", string(t)),
		zap.Int("sent", res.Sent),
		zap.Int("dead_tokens", res.DeadTokens))
	return res, nil
}

// appendLog never fails the run; a lost log row is reported through zap.
// The row is written even when ctx is already cancelled or past its deadline.
func (s *ReminderService) appendLog(ctx context.Context, entry *logModel.SystemLog) {
	if err := s.Logs.Append(context.WithoutCancel(ctx), entry); err != nil {
		s.Log.Error("write job log failed", zap.String("event_type", entry.EventType), zap.Error(err))
	}
}
