package studytimer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Recorder receives credited study minutes.
type Recorder interface {
	AddStudyTime(ctx context.Context, minutes int)
}

// Timer credits study time on a fixed interval while the TUI is open.
// Paused time is not credited.
type Timer struct {
	rec     Recorder
	every   int
	log     *zap.Logger
	sched   *gocron.Scheduler
	mu      sync.Mutex
	paused  bool
	ctx     context.Context
	credits int
}

// New returns a Timer that credits everyMinutes minutes per tick. A
// non-positive interval disables the timer.
func New(rec Recorder, everyMinutes int, log *zap.Logger) *Timer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Timer{
		rec:   rec,
		every: everyMinutes,
		log:   log,
		sched: gocron.NewScheduler(time.Local),
	}
}

// Start schedules the job and returns immediately. The first credit is
// given one interval after Start.
func (t *Timer) Start(ctx context.Context) error {
	if t.every <= 0 {
		return nil
	}
	t.mu.Lock()
	t.ctx = ctx
	t.mu.Unlock()

	if _, err := t.sched.Every(t.every).Minutes().WaitForSchedule().Do(t.Tick); err != nil {
		return fmt.Errorf("schedule study timer: %w", err)
	}
	t.sched.StartAsync()
	t.log.Debug("study timer started", zap.Int("every_minutes", t.every))
	return nil
}

// Stop halts the scheduler. Safe to call when never started.
func (t *Timer) Stop() {
	if t.sched.IsRunning() {
		t.sched.Stop()
	}
}

// Pause stops crediting until Resume; the job keeps running.
func (t *Timer) Pause() {
	t.mu.Lock()
	t.paused = true
	t.mu.Unlock()
}

// Resume re-enables crediting after Pause.
func (t *Timer) Resume() {
	t.mu.Lock()
	t.paused = false
	t.mu.Unlock()
}

// Tick credits one interval unless paused.
func (t *Timer) Tick() {
	t.mu.Lock()
	if t.paused {
		t.mu.Unlock()
		return
	}
	ctx := t.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	t.credits++
	t.mu.Unlock()

	t.rec.AddStudyTime(ctx, t.every)
}

// Credits returns how many ticks have been credited.
func (t *Timer) Credits() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.credits
}
