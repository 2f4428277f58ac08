// Package render drives the paced frame loop shared by the viewers.
package render

import (
	"context"
	"log/slog"
	"math"
	"sync/atomic"
	"time"
)

// DefaultReportInterval is how often FPS is reported when unset in config.
const DefaultReportInterval = 5 * time.Second

// Loop runs a frame callback at most MaxFPS times per second.
type Loop struct {
	// MaxFPS caps the frame rate by sleeping out the remainder of each
	// frame's budget. Zero or less runs unpaced.
	MaxFPS int
	// ReportInterval is the FPS reporting period. Zero or less disables
	// reporting.
	ReportInterval time.Duration

	Clock    Clock
	Logger   *slog.Logger
	OnReport func(fps float64)

	lastFPS atomic.Uint64
}

// LastFPS returns the most recent report, or 0 before the first one. It is
// safe to call from any goroutine.
func (l *Loop) LastFPS() float64 {
	return math.Float64frombits(l.lastFPS.Load())
}

// Budget is the frame period implied by MaxFPS.
func (l *Loop) Budget() time.Duration {
	if l.MaxFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(l.MaxFPS)
}

// Run calls frame until ctx is done or frame returns an error. ctx is only
// checked between frames, so a started frame always completes. Cancellation
// returns nil.
func (l *Loop) Run(ctx context.Context, frame func(ctx context.Context) error) error {
	clock := l.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	budget := l.Budget()
	meter := Meter{Interval: l.ReportInterval}
	meter.Reset(clock.Now())

	for ctx.Err() == nil {
		start := clock.Now()
		if err := frame(ctx); err != nil {
			return err
		}
		end := clock.Now()

		if fps, ok := meter.Tick(end); ok {
			l.lastFPS.Store(math.Float64bits(fps))
			logger.Info("render", "fps", fps)
			if l.OnReport != nil {
				l.OnReport(fps)
			}
		}

		if wait := budget - end.Sub(start); budget > 0 && wait > 0 {
			clock.Sleep(ctx, wait)
		}
	}
	return nil
}
