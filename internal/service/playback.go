package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/ridwan89/swiftbus-booking/internal/redis"
)

// StatusTracker is what the playback scheduler drives.
type StatusTracker interface {
	View(ctx context.Context, code string) (*TrackingView, error)
	Advance(ctx context.Context, code string) (*TrackingView, error)
}

// Playback simulates live progress by advancing bookings on a fixed interval.
// Each booking gets its own goroutine; the optional lock store keeps two
// instances from playing the same booking.
type Playback struct {
	tracker  StatusTracker
	locks    redis.LockStoreInterface
	interval time.Duration
	observer func(*TrackingView)

	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup

	mu      sync.Mutex
	running map[string]*playbackRun
	closed  bool
}

type playbackRun struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// DefaultPlaybackInterval is used when no positive interval is configured.
const DefaultPlaybackInterval = 10 * time.Second

// NewPlayback creates a scheduler. locks and observer may be nil. observer
// is called after every tick with the booking's new view.
func NewPlayback(tracker StatusTracker, locks redis.LockStoreInterface, interval time.Duration, observer func(*TrackingView)) *Playback {
	if interval <= 0 {
		interval = DefaultPlaybackInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Playback{
		tracker:  tracker,
		locks:    locks,
		interval: interval,
		observer: observer,
		ctx:      ctx,
		cancel:   cancel,
		running:  make(map[string]*playbackRun),
	}
}

// Start begins advancing a booking. It returns ErrBookingCompleted when the
// booking cannot progress and ErrPlaybackRunning when already playing.
func (p *Playback) Start(ctx context.Context, code string) error {
	view, err := p.tracker.View(ctx, code)
	if err != nil {
		return err
	}
	if view.Finished {
		return ErrBookingCompleted
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlaybackClosed
	}
	if _, ok := p.running[code]; ok {
		return ErrPlaybackRunning
	}

	if p.locks != nil {
		ok, err := p.locks.AcquirePlaybackLock(ctx, code, p.lockTTL())
		if err != nil {
			return err
		}
		if !ok {
			return ErrPlaybackLocked
		}
	}

	runCtx, cancel := context.WithCancel(p.ctx)
	run := &playbackRun{cancel: cancel, done: make(chan struct{})}
	p.running[code] = run

	p.wg.Go(func() {
		defer close(run.done)
		p.play(runCtx, code)
		p.finish(code, run)
	})

	log.Info().Str("booking_code", code).Dur("interval", p.interval).Msg("playback started")
	return nil
}

// Stop halts playback for a booking and waits for its goroutine to exit.
func (p *Playback) Stop(code string) error {
	p.mu.Lock()
	run, ok := p.running[code]
	p.mu.Unlock()
	if !ok {
		return ErrPlaybackNotRunning
	}

	run.cancel()
	<-run.done
	return nil
}

// Running reports whether a booking is being played.
func (p *Playback) Running(code string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.running[code]
	return ok
}

// Wait blocks until every active playback has finished on its own.
func (p *Playback) Wait() {
	p.wg.Wait()
}

// Close stops all playbacks and waits for them. Start fails afterwards.
func (p *Playback) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}

func (p *Playback) play(ctx context.Context, code string) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		view, err := p.tracker.Advance(ctx, code)
		if err != nil {
			if ctx.Err() == nil {
				log.Error().Err(err).Str("booking_code", code).Msg("playback advance failed")
			}
			return
		}
		if p.observer != nil {
			p.observer(view)
		}
		if view.Finished {
			log.Info().Str("booking_code", code).Msg("playback reached completed")
			return
		}

		if p.locks != nil {
			ok, err := p.locks.RefreshPlaybackLock(ctx, code, p.lockTTL())
			if err != nil || !ok {
				log.Warn().Err(err).Str("booking_code", code).Msg("playback lock lost")
				return
			}
		}
	}
}

// finish removes the run and releases its lock.
func (p *Playback) finish(code string, run *playbackRun) {
	p.mu.Lock()
	if p.running[code] == run {
		delete(p.running, code)
	}
	p.mu.Unlock()
	run.cancel()

	if p.locks != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := p.locks.ReleasePlaybackLock(ctx, code); err != nil {
			log.Warn().Err(err).Str("booking_code", code).Msg("failed to release playback lock")
		}
	}
}

func (p *Playback) lockTTL() time.Duration {
	return 3 * p.interval
}
