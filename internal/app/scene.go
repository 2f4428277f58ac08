package app

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/tinyrange/glview/internal/camera"
	"github.com/tinyrange/glview/internal/graphics"
)

// WireColor is the colour of the wireframe cube.
var WireColor = graphics.Color{0.9, 0.9, 0.9, 1}

// DrawOrbitScene draws the unit axes and a wireframe cube of side 1 as seen
// from view.
func DrawOrbitScene(p graphics.Pipeline, view camera.OrbitView, width, height int) {
	p.SetMatrices(view.Projection(width, height), view.View())
	verts, colors := graphics.Axes()
	p.DrawLines(verts, colors)
	p.DrawLines(graphics.WireCube(0.5), []graphics.Color{WireColor})
}

// ErrScreenshotTaken ends a frame loop after Capture succeeded.
var ErrScreenshotTaken = errors.New("screenshot taken")

// Screenshotter reads back the current frame. graphics.Pipeline implements
// it.
type Screenshotter interface {
	Screenshot() (image.Image, error)
}

// Capture saves the current frame to ScreenshotPath and returns
// ErrScreenshotTaken, or the error that prevented it.
func Capture(s Screenshotter, logger *slog.Logger) error {
	img, err := s.Screenshot()
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	if err := SaveScreenshot(ScreenshotPath, img); err != nil {
		return err
	}
	if logger != nil {
		logger.Info("screenshot saved", "path", ScreenshotPath)
	}
	return ErrScreenshotTaken
}
