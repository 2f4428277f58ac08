package app

import (
	"errors"
	"image"
	"os"
	"testing"

	"github.com/tinyrange/glview/internal/camera"
	"github.com/tinyrange/glview/internal/gl"
	"github.com/tinyrange/glview/internal/gl/gltest"
	"github.com/tinyrange/glview/internal/graphics"
)

func TestDrawOrbitSceneFixed(t *testing.T) {
	rec := &gltest.Recorder{}
	p, err := graphics.New(graphics.VariantFixed, rec, graphics.Options{})
	if err != nil {
		t.Fatal(err)
	}
	rec.Reset()

	view := camera.OrbitView{Distance: 3, Yaw: 0.7, Pitch: 0.4}
	DrawOrbitScene(p, view, 960, 600)

	if n := rec.Count("Vertex3f"); n != 6+24 {
		t.Fatalf("Vertex3f calls = %d, want 30", n)
	}
	if n := rec.Count("Begin"); n != 2 {
		t.Fatalf("Begin calls = %d, want 2", n)
	}
	for _, c := range rec.Calls() {
		if c.Name == "Begin" && c.Args[0] != uint32(gl.Lines) {
			t.Fatalf("drew mode %v, want lines", c.Args[0])
		}
	}

	loads := 0
	for _, c := range rec.Calls() {
		if c.Name != "LoadMatrixf" {
			continue
		}
		loads++
		m := c.Args[0].([16]float32)
		want := [16]float32(view.Projection(960, 600))
		if loads == 2 {
			want = [16]float32(view.View())
		}
		if m != want {
			t.Fatalf("matrix %d = %v, want %v", loads, m, want)
		}
	}
	if loads != 2 {
		t.Fatalf("LoadMatrixf calls = %d, want 2", loads)
	}
}

type shotFunc func() (image.Image, error)

func (f shotFunc) Screenshot() (image.Image, error) { return f() }

func TestCapture(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	err = Capture(shotFunc(func() (image.Image, error) {
		return image.NewNRGBA(image.Rect(0, 0, 2, 2)), nil
	}), nil)
	if !errors.Is(err, ErrScreenshotTaken) {
		t.Fatalf("err = %v, want ErrScreenshotTaken", err)
	}
	if _, err := os.Stat(ScreenshotPath); err != nil {
		t.Fatalf("screenshot not written: %v", err)
	}

	boom := errors.New("boom")
	err = Capture(shotFunc(func() (image.Image, error) { return nil, boom }), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}
