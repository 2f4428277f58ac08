package input

import (
	"log/slog"
	"strings"

	"github.com/tinyrange/glview/internal/config"
	"github.com/tinyrange/glview/internal/window"
)

// Action is what a key binding does.
type Action string

const (
	ActionClose       Action = "close"
	ActionToggleView  Action = "toggle_view"
	ActionResetCamera Action = "reset_camera"
	ActionLog         Action = "log"
)

func parseAction(s string) (Action, bool) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionClose, ActionToggleView, ActionResetCamera, ActionLog:
		return a, true
	}
	return "", false
}

// Binding fires Action when Key is pressed with at least Mods held.
type Binding struct {
	Key     window.Key
	Mods    window.Mod
	Action  Action
	Message string
}

func (b Binding) matches(key window.Key, mods window.Mod) bool {
	return b.Key == key && mods&b.Mods == b.Mods
}

// ParseBindings converts config entries. Entries naming an unknown key,
// modifier or action are skipped with a warning.
func ParseBindings(entries []config.Binding, logger *slog.Logger) []Binding {
	if logger == nil {
		logger = slog.Default()
	}
	out := make([]Binding, 0, len(entries))
next:
	for _, e := range entries {
		key, ok := window.ParseKey(e.Key)
		if !ok {
			logger.Warn("unknown key in binding, skipped", "key", e.Key)
			continue
		}
		var mods window.Mod
		for _, name := range e.Mods {
			m, ok := window.ParseMod(name)
			if !ok {
				logger.Warn("unknown modifier in binding, skipped", "key", e.Key, "mod", name)
				continue next
			}
			mods |= m
		}
		action, ok := parseAction(e.Action)
		if !ok {
			logger.Warn("unknown action in binding, skipped", "key", e.Key, "action", e.Action)
			continue
		}
		out = append(out, Binding{Key: key, Mods: mods, Action: action, Message: e.Message})
	}
	return out
}
