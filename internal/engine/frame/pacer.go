package frame

import (
	"context"
	"time"
)

// VSync relies on the host's buffer swap to block until the display refresh.
// It only checks for cancellation.
type VSync struct{}

// Wait returns ctx.Err() if ctx is done.
func (VSync) Wait(ctx context.Context) error {
	return ctx.Err()
}

// Ticker paces ticks at a fixed rate.
type Ticker struct {
	t *time.Ticker
}

// NewTicker creates a pacer firing fps times per second.
func NewTicker(fps int) *Ticker {
	return &Ticker{t: time.NewTicker(time.Second / time.Duration(fps))}
}

// Wait blocks until the next tick or until ctx is done.
func (p *Ticker) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.t.C:
		return nil
	}
}

// Stop releases the ticker.
func (p *Ticker) Stop() {
	p.t.Stop()
}

// DefaultRefreshRate paces hosts that do not block on a vsync swap.
const DefaultRefreshRate = 60

// NewPacer returns a Ticker at fps when fps is positive. Otherwise it returns
// VSync if the host's swap blocks on the display refresh, and a Ticker at
// DefaultRefreshRate if it does not.
func NewPacer(fps int, hostVSync bool) Pacer {
	if fps > 0 {
		return NewTicker(fps)
	}
	if hostVSync {
		return VSync{}
	}
	return NewTicker(DefaultRefreshRate)
}
