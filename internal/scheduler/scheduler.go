package scheduler

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"FishingDay/internal/game"
)

// DayPlayer plays one day to completion.
type DayPlayer interface {
	PlayDay(ctx context.Context) (game.DayReport, error)
}

// Scheduler plays one unattended day per cron tick until the day limit is reached.
type Scheduler struct {
	Cron   *cron.Cron
	player DayPlayer
	days   int // 0 means no limit
	ctx    context.Context
	log    *zap.Logger

	mu       sync.Mutex
	played   int
	done     chan struct{}
	doneOnce sync.Once
	err      error
}

// NewScheduler creates a Scheduler. Ticks that fire while a day is still being
// played are skipped so days never overlap.
func NewScheduler(ctx context.Context, player DayPlayer, days int, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	cl := cronLogger{log.Sugar()}
	return &Scheduler{
		Cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		player: player,
		days:   days,
		ctx:    ctx,
		log:    log,
		done:   make(chan struct{}),
	}
}

// Register adds the day task on spec, a standard cron expression or descriptor.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.dayTask); err != nil {
		return errors.Wrapf(err, "register day task %q", spec)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", zap.Int("days", s.days))
}

// Stop stops the cron scheduler and waits for a running day to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped", zap.Int("played", s.Played()))
}

// Done is closed once the day limit is reached or a day fails.
func (s *Scheduler) Done() <-chan struct{} { return s.done }

// Err returns the error that stopped the run, if any.
func (s *Scheduler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Played returns how many days have finished.
func (s *Scheduler) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}

// RunDayNow plays a day immediately, outside the cron schedule.
func (s *Scheduler) RunDayNow() {
	s.dayTask()
}

func (s *Scheduler) dayTask() {
	if s.finished() || s.ctx.Err() != nil {
		return
	}

	report, err := s.player.PlayDay(s.ctx)
	if err != nil {
		s.log.Error("autopilot day failed", zap.Error(err))
		s.finish(err)
		return
	}

	s.mu.Lock()
	s.played++
	played := s.played
	s.mu.Unlock()

	s.log.Info("autopilot day finished",
		zap.Int("day", report.Day),
		zap.String("outcome", string(report.Outcome)),
		zap.Int("closing_wealth", report.ClosingWealth),
		zap.Int("played", played),
	)
	if s.days > 0 && played >= s.days {
		s.finish(nil)
	}
}

func (s *Scheduler) finished() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Scheduler) finish(err error) {
	s.doneOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.done)
	})
}

// cronLogger routes cron's own messages through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
