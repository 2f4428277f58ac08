package render

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func TestMeterReportsAndResets(t *testing.T) {
	start := time.Unix(100, 0)
	m := Meter{Interval: 5 * time.Second}
	m.Reset(start)

	var reports []float64
	for i := 1; i <= 300; i++ {
		now := start.Add(time.Duration(i) * 5 * time.Second / 150)
		if fps, ok := m.Tick(now); ok {
			reports = append(reports, fps)
			if m.Frames() != 0 {
				t.Fatalf("counter not reset after report: %d", m.Frames())
			}
		}
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	for _, fps := range reports {
		if fps != 30 {
			t.Fatalf("fps = %v, want 30", fps)
		}
	}
}

func TestMeterDisabled(t *testing.T) {
	m := Meter{}
	m.Reset(time.Unix(0, 0))
	for i := 0; i < 10; i++ {
		if _, ok := m.Tick(time.Unix(int64(i*10), 0)); ok {
			t.Fatal("reported with zero interval")
		}
	}
	if m.Frames() != 10 {
		t.Fatalf("frames = %d", m.Frames())
	}
}

func TestLoopReportsFPS(t *testing.T) {
	clock := newFakeClock()
	start := clock.Now()

	var buf bytes.Buffer
	var reports []float64
	loop := &Loop{
		ReportInterval: 5 * time.Second,
		Clock:          clock,
		Logger:         slog.New(slog.NewTextHandler(&buf, nil)),
		OnReport:       func(fps float64) { reports = append(reports, fps) },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	frames := 0
	err := loop.Run(ctx, func(context.Context) error {
		frames++
		clock.Set(start.Add(time.Duration(frames) * 5 * time.Second / 150))
		if frames == 150 {
			cancel()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(reports) != 1 || reports[0] != 30 {
		t.Fatalf("reports = %v, want [30]", reports)
	}
	if loop.LastFPS() != 30 {
		t.Fatalf("LastFPS = %v", loop.LastFPS())
	}
	if !strings.Contains(buf.String(), "fps=30") {
		t.Fatalf("log output %q", buf.String())
	}
}

func TestLoopPacing(t *testing.T) {
	cases := []struct {
		name      string
		maxFPS    int
		frameTime time.Duration
		want      []time.Duration
	}{
		{"sleeps_remainder", 50, 5 * time.Millisecond, []time.Duration{15 * time.Millisecond, 15 * time.Millisecond}},
		{"over_budget", 50, 30 * time.Millisecond, nil},
		{"exact_budget", 50, 20 * time.Millisecond, nil},
		{"unpaced", 0, time.Millisecond, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clock := newFakeClock()
			loop := &Loop{MaxFPS: c.maxFPS, Clock: clock, Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			n := 0
			err := loop.Run(ctx, func(context.Context) error {
				clock.Advance(c.frameTime)
				if n++; n == 2 {
					cancel()
				}
				return nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(clock.sleeps) != len(c.want) {
				t.Fatalf("sleeps = %v, want %v", clock.sleeps, c.want)
			}
			for i := range c.want {
				if clock.sleeps[i] != c.want[i] {
					t.Fatalf("sleeps = %v, want %v", clock.sleeps, c.want)
				}
			}
		})
	}
}

func TestLoopStopsAfterCurrentFrame(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started, completed := 0, 0
	loop := &Loop{Clock: newFakeClock()}
	err := loop.Run(ctx, func(context.Context) error {
		started++
		if started == 3 {
			cancel()
		}
		completed++
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if started != 3 || completed != 3 {
		t.Fatalf("started %d completed %d, want 3/3", started, completed)
	}
}

func TestLoopReturnsFrameError(t *testing.T) {
	boom := errors.New("boom")
	loop := &Loop{Clock: newFakeClock()}
	calls := 0
	err := loop.Run(context.Background(), func(context.Context) error {
		calls++
		if calls == 4 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) || calls != 4 {
		t.Fatalf("err = %v after %d calls", err, calls)
	}
}

func TestLoopJoinsUnderErrgroup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	loop := &Loop{MaxFPS: 1000, ReportInterval: time.Hour}
	ticked := make(chan struct{}, 1)
	g.Go(func() error {
		return loop.Run(gctx, func(context.Context) error {
			select {
			case ticked <- struct{}{}:
			default:
			}
			return nil
		})
	})

	select {
	case <-ticked:
	case <-time.After(5 * time.Second):
		t.Fatal("render task never ran a frame")
	}
	cancel()

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("join did not complete")
	}
}

func TestBudget(t *testing.T) {
	if got := (&Loop{MaxFPS: 30}).Budget(); got != time.Second/30 {
		t.Fatalf("budget = %v", got)
	}
	if got := (&Loop{}).Budget(); got != 0 {
		t.Fatalf("budget = %v", got)
	}
	if (&Loop{}).LastFPS() != 0 {
		t.Fatal("LastFPS before first report should be 0")
	}
}
