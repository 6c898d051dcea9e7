package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pushModel "jamath_backend/internals/features/notifications/push/model"
	"jamath_backend/internals/helpers/batch"
	"jamath_backend/internals/helpers/metrics"
)

// TokenDeleter removes device registrations by exact token value.
type TokenDeleter interface {
	DeleteByTokens(ctx context.Context, tokens []string) error
}

// Report is the outcome of one dispatch.
type Report struct {
	Sent       int
	Batches    int
	DeadTokens []string
}

// Dispatcher sends messages in provider-sized chunks and prunes dead tokens.
type Dispatcher struct {
	sender    Sender
	chunkSize int
	log       *zap.Logger
}

func NewDispatcher(sender Sender, log *zap.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, chunkSize: MaxBatchSize, log: log.Named("push")}
}

// Dispatch sends msgs sequentially in chunks and collects the tokens the
// provider reported as dead.
func (d *Dispatcher) Dispatch(ctx context.Context, source string, msgs []pushModel.Message) (Report, error) {
	out, err := batch.Send(ctx, msgs, d.chunkSize,
		batch.SendFunc[pushModel.Message, pushModel.Result](d.sender.SendEach),
		func(_ pushModel.Message, r pushModel.Result) bool { return pushModel.IsDeadToken(r) },
	)

	rep := Report{Sent: out.Sent, Batches: out.Batches}
	for _, m := range out.Flagged {
		rep.DeadTokens = append(rep.DeadTokens, m.Token)
	}

	metrics.PushMessages.WithLabelValues(source, "sent").Add(float64(rep.Sent))
	metrics.PushMessages.WithLabelValues(source, "dead").Add(float64(len(rep.DeadTokens)))

	if err != nil {
		d.log.Error("dispatch aborted",
			zap.String("source", source),
			zap.Int("sent", rep.Sent),
			zap.Int("batches", rep.Batches),
			zap.Error(err))
		return rep, err
	}
	d.log.Info("dispatch complete",
		zap.String("source", source),
		zap.Int("sent", rep.Sent),
		zap.Int("batches", rep.Batches),
		zap.Int("dead", len(rep.DeadTokens)))
	return rep, nil
}

// Prune deletes the dead tokens of a report in one call.
func (d *Dispatcher) Prune(ctx context.Context, deleter TokenDeleter, rep Report) error {
	if len(rep.DeadTokens) == 0 {
		return nil
	}
	if err := deleter.DeleteByTokens(ctx, rep.DeadTokens); err != nil {
		return fmt.Errorf("delete dead tokens: %w", err)
	}
	metrics.DeadTokensPruned.Add(float64(len(rep.DeadTokens)))
	return nil
}

// Broadcast is Dispatch followed by Prune.
func (d *Dispatcher) Broadcast(ctx context.Context, source string, msgs []pushModel.Message, deleter TokenDeleter) (Report, error) {
	rep, err := d.Dispatch(ctx, source, msgs)
	if err != nil {
		return rep, err
	}
	return rep, d.Prune(ctx, deleter, rep)
}
