package window

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"
)

var commonScales = []float32{0.75, 1.0, 1.25, 1.5, 1.75, 2.0, 2.5, 3.0, 4.0}

// envScale returns the first positive scale factor set by the desktop
// toolkit variables, or 0.
func envScale() float32 {
	for _, name := range []string{"GTK_SCALE", "GDK_SCALE", "QT_SCALE_FACTOR"} {
		v, err := strconv.ParseFloat(os.Getenv(name), 32)
		if err == nil && v > 0 {
			return float32(v)
		}
	}
	return 0
}

// parseXftDPI extracts the Xft.dpi value from an X resource manager string
// such as "Xft.dpi:\t96\n". It returns 0 when the entry is absent.
func parseXftDPI(resources string) float32 {
	sc := bufio.NewScanner(strings.NewReader(resources))
	for sc.Scan() {
		name, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(name) != "Xft.dpi" {
			continue
		}
		dpi, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
		if err != nil || dpi <= 0 {
			return 0
		}
		return float32(dpi)
	}
	return 0
}

// roundScale snaps scale to the nearest common factor within 0.1, otherwise
// clamps it to [0.5, 4].
func roundScale(scale float32) float32 {
	best, diff := float32(1), float32(math.MaxFloat32)
	for _, cs := range commonScales {
		if d := float32(math.Abs(float64(scale - cs))); d < diff {
			best, diff = cs, d
		}
	}
	if diff < 0.1 {
		return best
	}
	return min(max(scale, 0.5), 4)
}
