package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/rs/zerolog"

	"lanerush/internal/app"
	"lanerush/internal/audio"
	"lanerush/internal/config"
	"lanerush/internal/desktop"
	"lanerush/internal/logging"
	"lanerush/internal/storage"
	"lanerush/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lanerush: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String("config", ".", "directory holding lanerush.json")
	seedFlag := flag.Uint64("seed", 0, "traffic seed, 0 picks one from the clock")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		return err
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}

	log, logCloser, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			log.Warn().Err(err).Msg("sentry init failed")
		} else {
			defer sentry.Flush(2 * time.Second)
			defer func() {
				if r := recover(); r != nil {
					hub := sentry.CurrentHub().Clone()
					hub.Recover(r)
					hub.Flush(5 * time.Second)
					panic(r)
				}
			}()
		}
	}

	if cfg.Debug.Statsview {
		viewer.SetConfiguration(viewer.WithAddr(cfg.Debug.StatsviewAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Info().Str("addr", cfg.Debug.StatsviewAddr).Msg("statsview listening")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Info().Uint64("seed", seed).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := app.Deps{
		Params:     cfg.Params(),
		Bindings:   cfg.Bindings(),
		RestartKey: cfg.Keys.Restart,
		Seed:       seed,
		Log:        log,
		Store:      openStore(cfg.Storage, log),
	}
	if deps.Store != nil {
		defer deps.Store.Close()
	}

	deps.Metrics, err = telemetry.New(telemetry.Meter())
	if err != nil {
		log.Warn().Err(err).Msg("metrics disabled")
		deps.Metrics = nil
	}

	if cfg.Audio.Enabled {
		snd, err := audio.New(audio.Options{
			SfxVolume:    cfg.Audio.SfxVolume,
			EngineVolume: cfg.Audio.EngineVolume,
		}, log)
		if err != nil {
			log.Warn().Err(err).Msg("audio init failed, continuing without sound")
		} else {
			defer snd.Close()
			deps.Sound = snd
		}
	}

	return desktop.Run(ctx, desktop.Options{
		Window: cfg.Window,
		Deps:   deps,
		Log:    log,
	})
}

// openStore returns nil when history is disabled or the database cannot
// be opened; the game runs either way.
func openStore(cfg config.StorageConfig, log zerolog.Logger) *storage.Store {
	if !cfg.Enabled {
		return nil
	}
	st, err := storage.Open(cfg.Path, log)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Path).Msg("run history disabled")
		return nil
	}
	return st
}
