//go:build !linux

package gl

import (
	"fmt"
	"runtime"
)

// Load reports that no loader exists for this platform yet.
func Load(core bool) (OpenGL, error) {
	return nil, fmt.Errorf("gl: no loader for %s", runtime.GOOS)
}
