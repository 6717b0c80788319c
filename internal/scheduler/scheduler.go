// Package scheduler fires the sync pass on a fixed cron schedule. A tick that
// arrives while the previous pass is still running is skipped and logged, and
// a panicking pass is recovered so the next tick still fires.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work. Errors are logged, never fatal.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron *cron.Cron
}

func New(spec string, job Job) (*Scheduler, error) {
	log := cronLogger{}
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(log),
		cron.Recover(log),
	))

	_, err := c.AddFunc(spec, func() {
		ctx := context.Background()
		if err := job(ctx); err != nil {
			slog.Error("scheduled run failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling; the returned context is done once any in-flight run
// has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger routes the cron library's messages (skipped overlapping runs,
// recovered panics) through slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Info(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
