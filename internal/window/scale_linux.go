//go:build linux

package window

import "unsafe"

// calculateScale picks the display scale from, in order: toolkit environment
// variables, Xft.dpi, the physical screen size. It defaults to 1.
func calculateScale(dpy uintptr, screen int32) float32 {
	if scale := envScale(); scale > 0 {
		return roundScale(scale)
	}

	if xResourceManagerString != nil {
		if dpi := parseXftDPI(gostring(xResourceManagerString(dpy))); dpi > 0 {
			return roundScale(dpi / 96)
		}
	}

	widthPx := xDisplayWidth(dpy, screen)
	widthMM := xDisplayWidthMM(dpy, screen)
	if widthPx > 0 && widthMM > 0 {
		dpi := float32(widthPx) / float32(widthMM) * 25.4
		// Ignore obviously bogus EDID sizes.
		if dpi >= 72 && dpi <= 300 {
			return roundScale(dpi / 96)
		}
	}
	return 1
}

func gostring(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
