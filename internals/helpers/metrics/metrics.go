package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jamath",
		Name:      "job_runs_total",
		Help:      "Batch job invocations by job and outcome.",
	}, []string{"job", "status"})

	PushMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jamath",
		Name:      "push_messages_total",
		Help:      "Push messages handed to the provider by outcome.",
	}, []string{"source", "outcome"})

	DeadTokensPruned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jamath",
		Name:      "dead_tokens_pruned_total",
		Help:      "Device tokens deleted after the provider reported them invalid.",
	})
)

// ObserveJob records one job run.
func ObserveJob(job string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	JobRuns.WithLabelValues(job, status).Inc()
}
