package supervisor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/safego"
)

// RestartPolicy controls when a worker should be restarted.
type RestartPolicy int

const (
	RestartNever RestartPolicy = iota
	RestartOnError
	RestartAlways
)

type options struct {
	policy      RestartPolicy
	maxRestarts int
	backoff     time.Duration
	maxBackoff  time.Duration
	sleep       func(time.Duration)
	onError     func(name string, err error)
}

// Option configures supervisor worker behavior.
type Option func(*options)

// WithRestartPolicy sets the restart policy.
func WithRestartPolicy(policy RestartPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithMaxRestarts limits the number of restarts (0 = unlimited).
func WithMaxRestarts(max int) Option {
	return func(o *options) {
		o.maxRestarts = max
	}
}

// WithBackoff sets the initial backoff between restarts.
func WithBackoff(d time.Duration) Option {
	return func(o *options) {
		o.backoff = d
	}
}

// WithMaxBackoff caps the backoff between restarts.
func WithMaxBackoff(d time.Duration) Option {
	return func(o *options) {
		o.maxBackoff = d
	}
}

// WithSleep replaces the backoff sleep. Tests use it to avoid real delays.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *options) {
		o.sleep = sleep
	}
}

// Supervisor runs background workers (the deck watcher) and restarts them
// according to their policy until it is stopped.
type Supervisor struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	onError func(name string, err error)
}

// New creates a supervisor bound to the parent context.
func New(parent context.Context) *Supervisor {
	ctx, cancel := context.WithCancel(parent)
	return &Supervisor{ctx: ctx, cancel: cancel}
}

// Stop cancels all workers and waits for them to exit.
func (s *Supervisor) Stop() {
	if s == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// SetErrorHandler registers a handler for worker errors. Cancellation is
// never reported.
func (s *Supervisor) SetErrorHandler(handler func(name string, err error)) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.onError = handler
	s.mu.Unlock()
}

func (s *Supervisor) errorHandler() func(name string, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onError
}

// Start runs a worker under supervision.
func (s *Supervisor) Start(name string, fn func(context.Context) error, opts ...Option) {
	if s == nil || fn == nil {
		return
	}
	cfg := options{
		policy:     RestartOnError,
		backoff:    200 * time.Millisecond,
		maxBackoff: 3 * time.Second,
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxBackoff <= 0 {
		cfg.maxBackoff = cfg.backoff
	}
	if cfg.sleep == nil {
		cfg.sleep = time.Sleep
	}

	s.wg.Add(1)
	safego.Go("supervisor."+name, func() {
		defer s.wg.Done()
		s.loop(name, fn, cfg)
	})
}

func (s *Supervisor) loop(name string, fn func(context.Context) error, cfg options) {
	restarts := 0
	backoff := cfg.backoff
	for {
		if s.ctx.Err() != nil {
			return
		}
		err := runSafe(name, fn, s.ctx)
		if s.ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			logging.Warn("supervisor: %s failed: %v", name, err)
			onError := cfg.onError
			if onError == nil {
				onError = s.errorHandler()
			}
			if onError != nil {
				onError(name, err)
			}
		}
		if !shouldRestart(err, cfg.policy) {
			return
		}
		restarts++
		if cfg.maxRestarts > 0 && restarts > cfg.maxRestarts {
			logging.Error("supervisor: %s exceeded max restarts (%d)", name, cfg.maxRestarts)
			return
		}
		if backoff > 0 {
			cfg.sleep(backoff)
			if backoff < cfg.maxBackoff {
				backoff = min(backoff*2, cfg.maxBackoff)
			}
		}
	}
}

func shouldRestart(err error, policy RestartPolicy) bool {
	switch policy {
	case RestartAlways:
		return true
	case RestartOnError:
		return err != nil
	default:
		return false
	}
}

func runSafe(name string, fn func(context.Context) error, ctx context.Context) (err error) {
	if p := safego.Run(name, func() { err = fn(ctx) }); p != nil {
		return p
	}
	return err
}
