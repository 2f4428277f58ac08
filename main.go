package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/tinyrange/glview/internal/app"
	"github.com/tinyrange/glview/internal/colormap"
	"github.com/tinyrange/glview/internal/config"
	"github.com/tinyrange/glview/internal/graphics"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file, reloaded when it changes")
	fps := fs.Int("fps", 0, "frame rate cap (0 runs unpaced)")
	texturePath := fs.String("texture", "", "image file to show instead of the checkerboard")
	cmap := fs.String("colormap", "", "colormap for the texture: "+strings.Join(colormap.Names(), ", "))
	screenshot := fs.Bool("screenshot", false, "save "+app.ScreenshotPath+" after the first frame and exit")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] [variant]\n\nvariant is 0 (OpenGL 2.1 fixed function, default) or 1 (OpenGL 3.3 shaders)\n\n", fs.Name())
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	logger := app.NewLogger(os.Stderr, *verbose)

	variant, err := graphics.ParseVariant(fs.Arg(0))
	if err != nil {
		logger.Warn("invalid variant, using fixed pipeline", "err", err)
	}

	base := config.Default()
	cfg, err := config.Load(*configPath, base, logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Flags given on the command line win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fps":
			cfg.Render.MaxFPS = *fps
		case "texture":
			cfg.Texture.Path = *texturePath
		case "colormap":
			cfg.Texture.Colormap = *cmap
		}
	})
	cfg = cfg.Validate(base, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v := &viewer{
		cfg:        cfg,
		base:       base,
		configPath: *configPath,
		variant:    variant,
		screenshot: *screenshot,
		logger:     logger,
	}
	if err := v.run(ctx); err != nil {
		log.Fatalf("image viewer: %v", err)
	}
}
