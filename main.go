package main

import (
	"errors"
	"flag"

	"github.com/decker502/dragonsweeper/pkg/app"
	"github.com/decker502/dragonsweeper/pkg/config"
	"github.com/decker502/dragonsweeper/pkg/embedded"
	"github.com/decker502/dragonsweeper/pkg/logger"
	"github.com/hajimehoshi/ebiten/v2"
)

var mainLog = logger.For("Main")

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose debug logging")
	seed := flag.Uint64("seed", 0, "Fixed board seed for reproducible games (0 = random)")
	configPath := flag.String("config", "", "Game config file (default: embedded data/dragonsweeper.yaml)")
	historyPath := flag.String("history", "", "Game history database (default: user cache dir, \"-\" disables)")
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		Seed:        *seed,
		ConfigPath:  *configPath,
		HistoryPath: *historyPath,
	})
	if err != nil {
		mainLog.WithError(err).Fatal("failed to initialize game")
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Dragonsweeper")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	if errors.Is(runErr, ebiten.Termination) {
		runErr = nil
	}

	if !gameApp.GetSceneManager().SaveOnExit() {
		mainLog.Warn("settings were not saved")
	}
	if err := gameApp.Close(); err != nil {
		mainLog.WithError(err).Warn("shutdown")
	}
	if runErr != nil {
		mainLog.WithError(runErr).Fatal("game exited with error")
	}
}
