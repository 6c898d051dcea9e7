package service

import (
	"context"

	"go.uber.org/zap"

	logModel "jamath_backend/internals/features/system/logs/model"
	"jamath_backend/internals/helpers/metrics"
)

const (
	EventYearlyRollover = "YEARLY_ROLLOVER"
	MsgRolloverDone     = "Yearly financial rollover completed successfully for all active members."

	jobName = "rollover"
)

type RolloverStore interface {
	ProcessYearlyRollover(ctx context.Context, headAmount, dependentAmount string) error
}

type LogWriter interface {
	Append(ctx context.Context, l *logModel.SystemLog) error
}

// RolloverService runs the yearly dues reset with fixed head and dependent
// amounts and records the outcome.
type RolloverService struct {
	Store           RolloverStore
	Logs            LogWriter
	HeadAmount      string
	DependentAmount string
	Log             *zap.Logger
}

func NewRolloverService(store RolloverStore, logs LogWriter, headAmount, dependentAmount string, log *zap.Logger) *RolloverService {
	return &RolloverService{
		Store:           store,
		Logs:            logs,
		HeadAmount:      headAmount,
		DependentAmount: dependentAmount,
		Log:             log.Named(jobName),
	}
}

func (s *RolloverService) Run(ctx context.Context) error {
	err := s.Store.ProcessYearlyRollover(ctx, s.HeadAmount, s.DependentAmount)
	metrics.ObserveJob(jobName, err)

	entry := &logModel.SystemLog{
		EventType: EventYearlyRollover,
		Status:    logModel.StatusSuccess,
		Message:   MsgRolloverDone,
		Metadata: map[string]interface{}{
			"head_amount":      s.HeadAmount,
			"dependent_amount": s.DependentAmount,
		},
	}
	if err != nil {
		s.Log.Error("rollover failed", zap.Error(err))
		entry.Status = logModel.StatusError
		entry.Message = "Failed to roll over: " + err.Error()
	} else {
		s.Log.Info("rollover complete",
			zap.String("head_amount", s.HeadAmount),
			zap.String("dependent_amount", s.DependentAmount))
	}

	if logErr := s.Logs.Append(context.WithoutCancel(ctx), entry); logErr != nil {
		s.Log.Error("write job log failed", zap.String("event_type", entry.EventType), zap.Error(logErr))
	}
	return err
}
