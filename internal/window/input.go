package window

import "strings"

// Key represents a keyboard key. Only the keys the viewers bind are named.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyTab
	KeySpace
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	keyCount
)

var keyNames = map[Key]string{
	KeyEscape: "escape",
	KeyTab:    "tab",
	KeySpace:  "space",
	KeyEnter:  "enter",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyUp:     "up",
	KeyDown:   "down",
}

func init() {
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + int(k-Key0)))
	}
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('a' + int(k-KeyA)))
	}
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey maps a config name such as "escape" or "s" to a Key.
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "esc":
		return KeyEscape, true
	case "return":
		return KeyEnter, true
	}
	for k, n := range keyNames {
		if n == name {
			return k, true
		}
	}
	return KeyUnknown, false
}

// Button represents a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return "unknown"
}

// Action distinguishes press from release for keys and buttons.
type Action int

const (
	Release Action = iota
	Press
)

// Mod is a bitmask of modifier keys held during an event.
type Mod int

const (
	ModShift Mod = 1 << iota
	ModControl
	ModAlt
)

// ParseMod maps "shift", "ctrl"/"control" and "alt" to a Mod.
func ParseMod(name string) (Mod, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shift":
		return ModShift, true
	case "ctrl", "control":
		return ModControl, true
	case "alt":
		return ModAlt, true
	}
	return 0, false
}

func (m Mod) String() string {
	var parts []string
	if m&ModControl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// Handler receives input events. Methods are invoked synchronously from
// Poll or Wait on the thread that owns the window.
type Handler interface {
	Key(key Key, action Action, mods Mod)
	MouseButton(button Button, action Action, mods Mod)
	CursorMove(x, y float64)
	Scroll(dx, dy float64)
}

// NopHandler ignores every event. Embed it to implement part of Handler.
type NopHandler struct{}

func (NopHandler) Key(Key, Action, Mod)            {}
func (NopHandler) MouseButton(Button, Action, Mod) {}
func (NopHandler) CursorMove(float64, float64)     {}
func (NopHandler) Scroll(float64, float64)         {}
