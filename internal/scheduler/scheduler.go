package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs each task every Interval on a gocron scheduler. Runs of one
// task never overlap: a tick that lands while the previous run is still going
// is dropped. A failing or panicking run is logged and the task keeps its
// schedule.
type Scheduler struct {
	log  *slog.Logger
	cron gocron.Scheduler
}

func New(logger *slog.Logger) (*Scheduler, error) {
	log := logger.With("component", "scheduler")
	cron, err := gocron.NewScheduler(
		gocron.WithLogger(log),
		gocron.WithStopTimeout(10*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Scheduler{log: log, cron: cron}, nil
}

func (s *Scheduler) Add(t Task) error {
	if t.Interval <= 0 {
		s.log.Warn("task_skipped", "task", t.Name, "reason", "non-positive interval")
		return nil
	}
	_, err := s.cron.NewJob(
		gocron.DurationJob(t.Interval),
		gocron.NewTask(func(ctx context.Context) error {
			start := time.Now()
			if err := t.Run(ctx); err != nil {
				return err
			}
			s.log.Debug("task_done", "task", t.Name, "duration_ms", time.Since(start).Milliseconds())
			return nil
		}),
		gocron.WithName(t.Name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithEventListeners(
			gocron.AfterJobRunsWithError(func(_ uuid.UUID, name string, err error) {
				if errors.Is(err, gocron.ErrPanicRecovered) {
					return
				}
				s.log.Error("task_failed", "task", name, "error", err)
			}),
			gocron.AfterJobRunsWithPanic(func(_ uuid.UUID, name string, r any) {
				s.log.Error("task_failed", "task", name, "reason", "panic", "error", r)
			}),
		),
	)
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels the context handed to running tasks and waits for them to
// return.
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}
