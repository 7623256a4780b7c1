package rate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultCron = "0 */10 7-18 * * 1-5"

var ErrSchedulerNotStarted = errors.New("scheduler is not started")

// Job is one schedulable unit of work.
type Job interface {
	Run(ctx context.Context, execID string) error
}

type Scheduler struct {
	job      Job
	cronExpr string
	// -----
	mu      sync.Mutex
	sched   gocron.Scheduler
	cronJob gocron.Job
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	task := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if runErr := s.job.Run(jobCtx, execID); runErr != nil {
			logrus.WithError(runErr).WithField("exec_id", execID).Error("Update exchange rates job failed")
		}
	}

	cronJob, err := scheduler.NewJob(
		gocron.CronJob(s.cronExpr, true),
		gocron.NewTask(task),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithContext(ctx),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return fmt.Errorf("failed to schedule job with cron %q: %w", s.cronExpr, err)
	}

	s.mu.Lock()
	s.sched = scheduler
	s.cronJob = cronJob
	s.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// TriggerNow runs the job immediately, outside of its schedule. A trigger
// arriving while a run is in progress is dropped.
func (s *Scheduler) TriggerNow() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cronJob == nil {
		return ErrSchedulerNotStarted
	}
	return s.cronJob.RunNow()
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.cronJob = nil
	s.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

func NewScheduler(job Job, cronExpr string) *Scheduler {
	if cronExpr == "" {
		cronExpr = DefaultCron
	}
	return &Scheduler{job: job, cronExpr: cronExpr}
}
