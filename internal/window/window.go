package window

import (
	"errors"
	"time"

	"github.com/tinyrange/glview/internal/gl"
)

// ErrUnsupported is returned when the platform or driver lacks a feature.
var ErrUnsupported = errors.New("window: unsupported")

// Window is a native window with a GL context.
//
// Poll, Wait, SetHandler and Close belong to the thread that created the
// window. The context may be moved to another thread with MakeCurrent; Swap,
// SetSwapInterval and GL calls then belong to that thread. BackingSize,
// ShouldClose and SetShouldClose are safe from any thread.
type Window interface {
	GL() (gl.OpenGL, error)
	Close()

	// Poll dispatches pending events and reports whether the window is open.
	Poll() bool
	// Wait blocks until events arrive or timeout elapses (negative waits
	// forever), then behaves like Poll.
	Wait(timeout time.Duration) bool

	Swap()
	MakeCurrent(current bool) error
	SetSwapInterval(interval int) error

	SetHandler(h Handler)
	SetShouldClose(close bool)
	ShouldClose() bool

	BackingSize() (width, height int)
	Cursor() (x, y float32)
	Scale() float32
	KeyDown(key Key) bool
	ButtonDown(button Button) bool
}

// SwapIntervalForRatio converts a display ratio in (0, 1] into a swap
// interval: 1 presents every vblank, 0.5 every second one.
func SwapIntervalForRatio(ratio float32) int {
	if ratio <= 0 || ratio > 1 {
		return 1
	}
	return int(1/ratio + 0.5)
}

// keyState is shared bookkeeping for KeyDown/ButtonDown. It is only touched
// on the event thread.
type keyState struct {
	keys    [keyCount]bool
	buttons [3]bool
}

func (s *keyState) setKey(k Key, down bool) {
	if k > KeyUnknown && k < keyCount {
		s.keys[k] = down
	}
}

func (s *keyState) setButton(b Button, down bool) {
	if b >= 0 && int(b) < len(s.buttons) {
		s.buttons[b] = down
	}
}

func (s *keyState) key(k Key) bool {
	return k > KeyUnknown && k < keyCount && s.keys[k]
}

func (s *keyState) button(b Button) bool {
	return b >= 0 && int(b) < len(s.buttons) && s.buttons[b]
}

// Wait deadlines are in whole milliseconds for poll(2).
func pollTimeout(timeout time.Duration) int {
	if timeout < 0 {
		return -1
	}
	ms := timeout.Milliseconds()
	if ms == 0 && timeout > 0 {
		ms = 1
	}
	return int(ms)
}
