// Package metrics exposes prometheus counters for the validation pipeline
// and the submission flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PipelineRuns counts pipeline executions by outcome:
	// "validated", "dapp_rejected" or "ui_error".
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_validation_pipeline_runs_total",
		Help: "Validation pipeline executions by outcome.",
	}, []string{"outcome"})

	// ProbeRetries counts timeout-triggered gateway re-init retries.
	ProbeRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wallet_gateway_probe_retries_total",
		Help: "Connectivity probes retried after a timeout-triggered re-init.",
	})

	// Submissions counts extrinsic submissions by terminal status:
	// "completed" or "failed".
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_extrinsic_submissions_total",
		Help: "Extrinsic submissions by terminal status.",
	}, []string{"status"})
)
