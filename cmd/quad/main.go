package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/hubastard/learngl/engine/config"
	"github.com/hubastard/learngl/engine/core"
	glbackend "github.com/hubastard/learngl/engine/gfx/gl"
	"github.com/hubastard/learngl/engine/logging"
	"github.com/hubastard/learngl/engine/platform"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run returns the process exit code. The logger is synced before it returns.
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("quad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "TOML config file (defaults to the built-in tutorial setup)")
	headless := fs.Bool("headless", false, "build every shader program without a window and report")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	file := config.Default()
	if *cfgPath != "" {
		var err error
		if file, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	log, err := logging.New(file.Log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer log.Sync()

	if *headless {
		if err := check(file, log); err != nil {
			log.Error("headless check", zap.Error(err))
			return 1
		}
		return 0
	}

	app := &quadApp{file: file, dev: glbackend.Device{}}
	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, log, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg, log)
	}

	if err := core.Run(app, file.Engine(), log, newWindow, newRenderer); err != nil {
		log.Error("run", zap.Error(err))
		return 1
	}
	return 0
}
