package typewriter

import (
	"sync"
	"time"
)

// Runner drives an Animator on its own timer goroutine and publishes each
// frame on a channel. It exists for hosts without their own scheduler; the
// TUI drives the animator directly from its event loop instead.
type Runner struct {
	frames chan string

	mu      sync.Mutex
	done    chan struct{}
	running bool
}

// NewRunner creates a runner for the given animator. The animation starts
// when Start is called.
func NewRunner() *Runner {
	return &Runner{
		frames: make(chan string, 1),
		done:   make(chan struct{}),
	}
}

// Start begins the animation. Frames are sent on Frames; a slow consumer
// drops frames rather than stalling the timer.
func (r *Runner) Start(a Animator) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.run(a)
}

// Frames returns the channel carrying rendered frames.
func (r *Runner) Frames() <-chan string {
	return r.frames
}

// run is the timer loop.
func (r *Runner) run(a Animator) {
	var delay time.Duration
	for {
		a, delay = a.Advance()

		select {
		case r.frames <- a.Frame():
		default:
			// Consumer is behind, drop the frame
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-r.done:
			timer.Stop()
			return
		}
	}
}

// Stop prevents the next scheduled tick from firing. Safe to call more
// than once.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	r.running = false
	close(r.done)
}
