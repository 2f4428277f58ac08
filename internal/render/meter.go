package render

import "time"

// Meter counts frames and yields a frames-per-second figure once per
// Interval.
type Meter struct {
	Interval time.Duration

	frames int
	last   time.Time
}

// Reset zeroes the counter and starts a new interval at now.
func (m *Meter) Reset(now time.Time) {
	m.frames = 0
	m.last = now
}

// Frames is the number of frames counted in the current interval.
func (m *Meter) Frames() int { return m.frames }

// Tick counts one frame finished at now. When at least Interval has passed
// since the last report it returns frames/elapsed and starts a new interval.
// A non-positive Interval never reports.
func (m *Meter) Tick(now time.Time) (float64, bool) {
	m.frames++
	if m.Interval <= 0 {
		return 0, false
	}
	elapsed := now.Sub(m.last)
	if elapsed < m.Interval {
		return 0, false
	}
	fps := float64(m.frames) / elapsed.Seconds()
	m.Reset(now)
	return fps, true
}
