package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/lixenwraith/minetower/app"
	"github.com/lixenwraith/minetower/audio"
	"github.com/lixenwraith/minetower/config"
	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/logging"
	"github.com/lixenwraith/minetower/remote"
	"github.com/lixenwraith/minetower/service"
)

var (
	configFlag = flag.String("config", "", "Path to a JSON config file")
	rowsFlag   = flag.Int("rows", 0, "Tower height in rows (3, 6, 9, 12 or 15)")
	colsFlag   = flag.Int("cols", 0, "Cells per row")
	serverFlag = flag.String("server", "", "Adjudicator websocket URL")
	debugFlag  = flag.Bool("debug", false, "Write a debug log under the log directory")
	muteFlag   = flag.Bool("mute", false, "Start with audio disabled")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	log, closeLog, err := logging.Setup(cfg.Log.Debug, cfg.Log.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if _, err := maxprocs.Set(maxprocs.Logger(log.Sugar().Debugf)); err != nil {
		log.Warn("GOMAXPROCS not adjusted", zap.Error(err))
	}

	if err := run(cfg, log); err != nil {
		log.Error("game exited with error", zap.Error(err))
		closeLog()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers command-line flags over file and environment settings
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}
	if *rowsFlag > 0 {
		cfg.Grid.Rows = *rowsFlag
	}
	if *colsFlag > 0 {
		cfg.Grid.Cols = *colsFlag
	}
	if *serverFlag != "" {
		cfg.Remote.URL = *serverFlag
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}

func run(cfg *config.Config, log *zap.Logger) error {
	hub := service.NewHub(log)
	adjudicator := remote.NewService()
	sound := audio.NewService()
	if err := hub.Register(adjudicator, cfg.RemoteSettings(), log); err != nil {
		return err
	}
	if err := hub.Register(sound, cfg.AudioSettings(), log); err != nil {
		return err
	}
	if err := hub.InitAll(); err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	if err := hub.StartAll(); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	defer hub.StopAll()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	core.SetCrashTarget(screen, log)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	defer screen.Fini()

	screen.EnableMouse()
	screen.HideCursor()

	game, err := app.New(app.Options{
		Screen: screen,
		Remote: adjudicator,
		Audio:  sound,
		Grid:   cfg.Grid,
		Logger: log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := game.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
