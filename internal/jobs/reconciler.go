package jobs

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var (
	reconcileRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitcrm_applications_reconcile_runs_total",
		Help: "Applications count reconcile runs by outcome.",
	}, []string{"outcome"})
	reconcileCorrected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recruitcrm_applications_reconcile_corrected_total",
		Help: "Jobs whose applications_count was corrected.",
	})
)

// Recounter recomputes every job's applications_count and returns how many jobs changed
type Recounter interface {
	RecountApplications(ctx context.Context) (int64, error)
}

// ApplicationsCountReconciler repairs the denormalised applications_count
// left stale by failed best-effort increments.
type ApplicationsCountReconciler struct {
	recounter Recounter
	timeout   time.Duration
	logger    *logrus.Entry
}

func NewApplicationsCountReconciler(recounter Recounter, timeout time.Duration, logger *logrus.Logger) *ApplicationsCountReconciler {
	return &ApplicationsCountReconciler{
		recounter: recounter,
		timeout:   timeout,
		logger:    logger.WithField("job", ApplicationsCountJobName),
	}
}

// Run performs one reconcile pass
func (r *ApplicationsCountReconciler) Run(ctx context.Context) (int64, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	started := time.Now()
	corrected, err := r.recounter.RecountApplications(ctx)
	if err != nil {
		reconcileRuns.WithLabelValues("error").Inc()
		r.logger.WithError(err).Error("applications count reconcile failed")
		return 0, err
	}

	reconcileRuns.WithLabelValues("ok").Inc()
	reconcileCorrected.Add(float64(corrected))
	entry := r.logger.WithFields(logrus.Fields{
		"corrected":   corrected,
		"duration_ms": time.Since(started).Milliseconds(),
	})
	if corrected > 0 {
		entry.Warn("corrected stale applications_count")
	} else {
		entry.Debug("applications_count consistent")
	}
	return corrected, nil
}
