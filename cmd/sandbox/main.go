package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/hubastard/gl2d/engine/config"
	"github.com/hubastard/gl2d/engine/core"
	"github.com/hubastard/gl2d/engine/gfx"
	glbackend "github.com/hubastard/gl2d/engine/gfx/gl"
	applog "github.com/hubastard/gl2d/engine/log"
	"github.com/hubastard/gl2d/engine/platform"
	"github.com/hubastard/gl2d/engine/profiler"
)

// GLFW and the GL context must stay on the main thread from the start.
func init() { runtime.LockOSThread() }

func main() {
	os.Exit(run())
}

func run() int {
	var (
		cfgPath     = flag.String("config", "", "path to a YAML config file")
		dumpConfig  = flag.Bool("dump-config", false, "print the effective config and exit")
		profilePath = flag.String("profile", "", "write a speedscope profile of update/render scopes to this path on exit")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *dumpConfig {
		if err := config.Write(os.Stdout, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	applog.Init(cfg.Log())
	defer applog.Close()
	log := applog.WithComponent("sandbox")

	ec, err := cfg.Engine()
	if err != nil {
		log.Error("config", slog.Any("err", err))
		return 2
	}

	var prof *profiler.Profiler
	if *profilePath != "" {
		prof = profiler.New(1 << 16)
	}

	app := NewSandbox(cfg, prof)
	newBackend := func() gfx.Backend { return glbackend.New() }
	if err := core.Run(app, ec, platform.NewGLFWWindow, newBackend); err != nil {
		log.Error("run failed", slog.Any("err", err))
		return 1
	}

	if prof != nil {
		if err := prof.WriteFile(*profilePath); err != nil {
			log.Error("write profile", slog.Any("err", err))
			return 1
		}
		log.Info("profile written", slog.String("path", *profilePath))
	}
	return 0
}
