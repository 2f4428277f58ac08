package window

import (
	"testing"
	"time"
)

func TestParseKey(t *testing.T) {
	cases := []struct {
		in   string
		want Key
		ok   bool
	}{
		{"escape", KeyEscape, true},
		{"Esc", KeyEscape, true},
		{"return", KeyEnter, true},
		{" space ", KeySpace, true},
		{"s", KeyS, true},
		{"7", Key7, true},
		{"f13", KeyUnknown, false},
		{"", KeyUnknown, false},
	}
	for _, c := range cases {
		got, ok := ParseKey(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseKey(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestKeyStringRoundTrip(t *testing.T) {
	for k := KeyEscape; k < keyCount; k++ {
		got, ok := ParseKey(k.String())
		if !ok || got != k {
			t.Errorf("ParseKey(%q) = %v, %v", k.String(), got, ok)
		}
	}
}

func TestParseMod(t *testing.T) {
	for name, want := range map[string]Mod{"shift": ModShift, "CTRL": ModControl, "control": ModControl, "alt": ModAlt} {
		got, ok := ParseMod(name)
		if !ok || got != want {
			t.Errorf("ParseMod(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseMod("super"); ok {
		t.Error("ParseMod(super) should fail")
	}
	if s := (ModShift | ModControl).String(); s != "ctrl+shift" {
		t.Errorf("Mod.String() = %q", s)
	}
}

func TestSwapIntervalForRatio(t *testing.T) {
	cases := []struct {
		ratio float32
		want  int
	}{
		{1, 1},
		{0.5, 2},
		{0.25, 4},
		{0.34, 3},
		{0, 1},
		{-1, 1},
		{2, 1},
	}
	for _, c := range cases {
		if got := SwapIntervalForRatio(c.ratio); got != c.want {
			t.Errorf("SwapIntervalForRatio(%v) = %d, want %d", c.ratio, got, c.want)
		}
	}
}

func TestPollTimeout(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want int
	}{
		{-time.Second, -1},
		{0, 0},
		{time.Microsecond, 1},
		{16 * time.Millisecond, 16},
		{2 * time.Second, 2000},
	}
	for _, c := range cases {
		if got := pollTimeout(c.in); got != c.want {
			t.Errorf("pollTimeout(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestKeyState(t *testing.T) {
	var s keyState
	s.setKey(KeyW, true)
	s.setButton(ButtonRight, true)
	s.setKey(KeyUnknown, true)
	if !s.key(KeyW) || s.key(KeyA) || s.key(KeyUnknown) {
		t.Fatal("unexpected key state")
	}
	if !s.button(ButtonRight) || s.button(ButtonLeft) {
		t.Fatal("unexpected button state")
	}
	s.setKey(KeyW, false)
	if s.key(KeyW) {
		t.Fatal("key still down after release")
	}
}

func TestParseXftDPI(t *testing.T) {
	cases := []struct {
		in   string
		want float32
	}{
		{"Xft.antialias:\t1\nXft.dpi:\t144\nXft.hinting:\t1\n", 144},
		{"Xft.dpi: 96.0", 96},
		{"Xcursor.size:\t24\n", 0},
		{"Xft.dpi:\tabc\n", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := parseXftDPI(c.in); got != c.want {
			t.Errorf("parseXftDPI(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRoundScale(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{1.02, 1},
		{1.48, 1.5},
		{2.2, 2.2},
		{0.1, 0.5},
		{9, 4},
	}
	for _, c := range cases {
		if got := roundScale(c.in); got != c.want {
			t.Errorf("roundScale(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
