package graphics

import "log/slog"

// Options configures a Pipeline.
type Options struct {
	// Logger receives shader diagnostics. Nil means slog.Default().
	Logger *slog.Logger
	// LineWidth for DrawLines; zero leaves the driver default.
	LineWidth float32
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
