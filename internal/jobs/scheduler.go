package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

const ApplicationsCountJobName = "applications-count-reconcile"

// JobScheduler runs the background jobs of the API process
type JobScheduler struct {
	scheduler gocron.Scheduler
	logger    *logrus.Logger
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(logger *logrus.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &JobScheduler{
		scheduler: scheduler,
		logger:    logger,
		jobs:      make(map[string]gocron.Job),
	}, nil
}

// ScheduleReconciler runs r every interval. A run still in progress delays the next one.
// Cancelling ctx aborts an in-flight run.
func (js *JobScheduler) ScheduleReconciler(ctx context.Context, r *ApplicationsCountReconciler, interval time.Duration) error {
	return js.AddJob(ApplicationsCountJobName, interval, func(ctx context.Context) {
		if ctx.Err() != nil {
			return
		}
		_, _ = r.Run(ctx)
	}, ctx)
}

// AddJob registers a singleton duration job under name
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if _, exists := js.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", name, err)
	}

	js.jobs[name] = job
	js.logger.WithFields(logrus.Fields{"job": name, "interval": interval.String()}).Info("registered background job")
	return nil
}

// JobNames lists the registered jobs
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}

func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}
