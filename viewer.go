package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"github.com/tinyrange/glview/internal/app"
	"github.com/tinyrange/glview/internal/camera"
	"github.com/tinyrange/glview/internal/config"
	"github.com/tinyrange/glview/internal/gl"
	"github.com/tinyrange/glview/internal/graphics"
	"github.com/tinyrange/glview/internal/input"
	"github.com/tinyrange/glview/internal/render"
	"github.com/tinyrange/glview/internal/window"
)

// The event loop wakes at least this often to pick up config reloads and
// render errors.
const eventTimeout = 100 * time.Millisecond

type viewer struct {
	cfg        config.Config
	base       config.Config
	configPath string
	variant    graphics.Variant
	screenshot bool
	logger     *slog.Logger

	win      window.Window
	ortho    *camera.Ortho2D
	ctrl     *input.Controller
	loop     *render.Loop
	textures graphics.TextureSet
	clear    atomic.Pointer[graphics.Color]
}

// run owns the main thread: it creates the window, hands the context to the
// render task and dispatches events until the window closes.
func (v *viewer) run(ctx context.Context) error {
	cfg := v.cfg
	win, err := window.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, v.variant.Core())
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()
	v.win = win
	v.logger.Info("window created", "variant", v.variant, "scale", win.Scale())

	v.ortho = camera.NewOrtho2DAt(cfg.Camera2D.Home(), cfg.Camera2D.Limits())
	v.ctrl = input.NewController(v.ortho, nil, input.Scheme{PanButton: window.ButtonLeft}, input.Mode2D)
	v.ctrl.Viewport = win.BackingSize
	v.ctrl.State = win
	v.ctrl.OnClose = func() { win.SetShouldClose(true) }
	v.ctrl.Logger = v.logger
	v.ctrl.SetBindings(input.ParseBindings(cfg.Keys, v.logger))
	win.SetHandler(v.ctrl)
	v.setClear(cfg)

	img, opts := app.Image(cfg.Texture, v.logger)
	v.textures.Queue(img, opts)

	v.loop = &render.Loop{
		MaxFPS:         cfg.Render.MaxFPS,
		ReportInterval: cfg.Render.ReportInterval,
		Logger:         v.logger,
	}

	var (
		configs   <-chan config.Config
		watchErrs <-chan error
	)
	if v.configPath != "" {
		w, err := config.Watch(v.configPath, v.base, v.logger)
		if err != nil {
			v.logger.Warn("config watch disabled", "path", v.configPath, "err", err)
		} else {
			defer w.Close()
			configs, watchErrs = w.Configs, w.Errors
		}
	}

	if err := win.MakeCurrent(false); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return v.render(ctx) })

	for ctx.Err() == nil && win.Wait(eventTimeout) {
		select {
		case next, ok := <-configs:
			if !ok {
				configs = nil
				continue
			}
			v.apply(next)
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			v.logger.Warn("config watch", "err", err)
		default:
		}
	}

	cancel()
	return g.Wait()
}

// apply takes the parts of a reloaded config that can change at runtime.
func (v *viewer) apply(cfg config.Config) {
	v.ortho.SetLimits(cfg.Camera2D.Limits())
	v.ctrl.SetBindings(input.ParseBindings(cfg.Keys, v.logger))
	v.setClear(cfg)
}

func (v *viewer) setClear(cfg config.Config) {
	c := graphics.ColorFrom(cfg.ClearColor())
	v.clear.Store(&c)
}

// render is the render task. The GL context is current on its OS thread
// from start to finish.
func (v *viewer) render(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := v.win.MakeCurrent(true); err != nil {
		return err
	}
	defer v.win.MakeCurrent(false)

	g, err := v.win.GL()
	if err != nil {
		return fmt.Errorf("load OpenGL: %w", err)
	}
	v.logger.Info("OpenGL", "version", g.GetString(gl.Version), "renderer", g.GetString(gl.Renderer))

	if err := v.win.SetSwapInterval(v.cfg.Window.SwapInterval); err != nil {
		v.logger.Warn("swap interval not set", "err", err)
	}

	pipe, err := graphics.New(v.variant, g, graphics.Options{Logger: v.logger})
	if err != nil {
		return err
	}
	defer pipe.Release()
	defer v.textures.Release(pipe)

	err = v.loop.Run(ctx, func(ctx context.Context) error {
		if v.textures.Pending() > 0 {
			if err := v.textures.Upload(pipe); err != nil {
				v.logger.Warn("texture upload failed", "err", err)
			}
		}

		w, h := v.win.BackingSize()
		pipe.Begin(w, h, *v.clear.Load(), false)
		pipe.SetMatrices(v.ortho.Projection(w, h), mgl32.Ident4())
		if tex := v.textures.Active(); tex != nil {
			pipe.DrawTexturedQuad(tex, 1)
		}

		if v.screenshot {
			return app.Capture(pipe, v.logger)
		}

		v.win.Swap()
		return nil
	})
	if errors.Is(err, app.ErrScreenshotTaken) {
		v.win.SetShouldClose(true)
		return nil
	}
	return err
}
