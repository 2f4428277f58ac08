package colormap

import (
	"bytes"
	"image/color"
	"log/slog"
	"math"
	"slices"
	"strings"
	"testing"
)

func TestNames(t *testing.T) {
	want := []string{"inferno", "jet", "magma", "plasma", "viridis"}
	if got := Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v", got)
	}
}

func TestEndpointsMatchControlPoints(t *testing.T) {
	cases := []struct {
		name        string
		first, last color.NRGBA
	}{
		{"viridis", color.NRGBA{0x44, 0x01, 0x54, 0xff}, color.NRGBA{0xfd, 0xe7, 0x25, 0xff}},
		{"magma", color.NRGBA{0x00, 0x00, 0x04, 0xff}, color.NRGBA{0xfc, 0xfd, 0xbf, 0xff}},
		{"jet", color.NRGBA{0x00, 0x00, 0x80, 0xff}, color.NRGBA{0x80, 0x00, 0x00, 0xff}},
	}
	for _, c := range cases {
		cm, ok := Get(c.name)
		if !ok {
			t.Fatalf("%s missing", c.name)
		}
		if got := cm.At(0); got != c.first {
			t.Errorf("%s.At(0) = %v, want %v", c.name, got, c.first)
		}
		if got := cm.At(1); got != c.last {
			t.Errorf("%s.At(1) = %v, want %v", c.name, got, c.last)
		}
	}
}

func TestAtClamps(t *testing.T) {
	cm, _ := Get("plasma")
	if cm.At(-5) != cm.Index(0) || cm.At(math.NaN()) != cm.Index(0) {
		t.Fatal("low values not clamped")
	}
	if cm.At(7) != cm.Index(Size-1) || cm.Index(1000) != cm.Index(Size-1) {
		t.Fatal("high values not clamped")
	}
}

func TestJetMidpointIsGreenish(t *testing.T) {
	cm, _ := Get("JET")
	mid := cm.At(0.5)
	if mid.G < 0xf0 || mid.R < 0x70 || mid.R > 0x90 || mid.B < 0x70 || mid.B > 0x90 {
		t.Fatalf("jet(0.5) = %v", mid)
	}
}

func TestLookupFallsBackWithWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	if cm := Lookup("inferno", logger); cm.Name() != "inferno" || buf.Len() != 0 {
		t.Fatalf("known name: %s, log %q", cm.Name(), buf.String())
	}

	cm := Lookup("rainbow", logger)
	if cm.Name() != Default {
		t.Fatalf("fallback = %s", cm.Name())
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "name=rainbow") {
		t.Fatalf("log %q", out)
	}
}
