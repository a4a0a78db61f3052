package sched

import (
	"context"
	"log/slog"
	"time"
)

// DefaultFrameInterval is the render cadence used when none is given.
const DefaultFrameInterval = time.Second / 60

// Loop hosts a Scheduler and a render callback on one goroutine. Work from
// other goroutines is handed in through Post so every callback runs in
// sequence.
type Loop struct {
	sched  *Scheduler
	render func()
	frame  time.Duration
	posts  chan func()
	done   chan struct{}
	log    *slog.Logger
}

// NewLoop wires s and render together. render may be nil.
func NewLoop(s *Scheduler, render func(), frame time.Duration, logger *slog.Logger) *Loop {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		sched:  s,
		render: render,
		frame:  frame,
		posts:  make(chan func(), 64),
		done:   make(chan struct{}),
		log:    logger,
	}
}

// Post queues fn to run on the loop goroutine. It returns false once the
// loop has exited.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.posts <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run drives the loop until ctx is cancelled. The simulation timer is
// re-armed after every wake; frames are drawn only while running, plus once
// after each posted command so paused views still reflect edits.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	timer := time.NewTimer(0)
	defer timer.Stop()
	ticker := time.NewTicker(l.frame)
	defer ticker.Stop()

	l.log.Info("loop started", "speed", l.sched.Speed(), "state", l.sched.State().String())
	for {
		select {
		case <-ctx.Done():
			l.log.Info("loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case fn := <-l.posts:
			fn()
			l.wake(timer)
			l.draw()
		case <-timer.C:
			l.wake(timer)
		case <-ticker.C:
			if l.sched.State() == Running {
				l.draw()
			}
		}
	}
}

func (l *Loop) wake(timer *time.Timer) {
	wait, _ := l.sched.Advance()
	if wait == Idle {
		timer.Stop()
		return
	}
	timer.Reset(wait)
}

func (l *Loop) draw() {
	if l.render != nil {
		l.render()
	}
}
