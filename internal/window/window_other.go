//go:build !linux

package window

import (
	"fmt"
	"runtime"
)

// New is only implemented for X11.
func New(title string, width, height int, core bool) (Window, error) {
	return nil, fmt.Errorf("%w: no window backend for %s", ErrUnsupported, runtime.GOOS)
}
