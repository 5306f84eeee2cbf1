// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/robfig/cron/v3"
)

type taskFn func(ctx context.Context) error

// Scheduler wraps a cron runner. Jobs receive a context that is cancelled by Stop and
// never overlap with themselves: a run that is due while the previous one is still busy
// is skipped.
type Scheduler struct {
	cron      *cron.Cron
	ctx       context.Context
	cancel    context.CancelFunc
	immediate []cron.EntryID
	running   sync.WaitGroup // immediate runs, which cron does not track
}

// New creates a stopped scheduler using the local time zone for schedules.
func New() *Scheduler {
	logger := cronLogger{}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.SkipIfStillRunning(logger)),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start runs the scheduler in its own goroutine, firing any job registered with
// startImmediately once right away.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, id := range s.immediate {
		job := s.cron.Entry(id).WrappedJob
		s.running.Add(1)
		go func() {
			defer s.running.Done()
			job.Run()
		}()
	}
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.running.Wait()
}

// NewCrontabJob registers fn under a standard five-field cron expression.
func (s *Scheduler) NewCrontabJob(name string, fn taskFn, crontab string, startImmediately bool) error {
	id, err := s.cron.AddFunc(crontab, s.taskWithRecover(fn, name))
	if err != nil {
		slog.Error("Scheduler creating job error", slog.String("jobName", name), slog.Any("error", err))
		return fmt.Errorf("invalid schedule %q for job %s: %w", crontab, name, err)
	}

	if startImmediately {
		s.immediate = append(s.immediate, id)
	}
	return nil
}

func (s *Scheduler) taskWithRecover(fn taskFn, jobName string) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error(
					"Panic recovered in scheduler job",
					slog.String("jobName", jobName),
					slog.Any("panic", r),
					slog.String("stacktrace", string(debug.Stack())),
				)
			}
		}()

		slog.Info("job start", slog.String("jobName", jobName))

		err := fn(s.ctx)
		if err != nil {
			slog.Error("job failed", slog.String("jobName", jobName), slog.Any("error", err))
		} else {
			slog.Info("job completed", slog.String("jobName", jobName))
		}
	}
}

// cronLogger routes cron's internal logging to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
