// Command dragonsweeper-server serves Dragonsweeper games over a JSON HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decker502/dragonsweeper/pkg/config"
	"github.com/decker502/dragonsweeper/pkg/history"
	"github.com/decker502/dragonsweeper/pkg/logger"
	"github.com/decker502/dragonsweeper/pkg/server"
	"github.com/sirupsen/logrus"
)

var log = logger.For("Main")

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "Listen address")
	historyPath := flag.String("history", "", "SQLite game history database (empty disables /history)")
	configPath := flag.String("config", "", "Game config file supplying the default board")
	maxGames := flag.Int("max-games", server.DefaultMaxGames, "Maximum number of live games")
	verbose := flag.Bool("verbose", false, "Enable verbose debug logging")
	flag.Parse()

	logger.SetVerbose(*verbose)
	if !*verbose {
		// 服务端默认输出启动与请求错误
		logger.Log.SetLevel(logrus.InfoLevel)
	}

	gameConfig := config.DefaultGameConfig()
	if *configPath != "" {
		cfg, err := config.LoadGameConfig(*configPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load game config")
		}
		gameConfig = cfg
	}

	opts := server.Options{
		Defaults: gameConfig.DefaultEngineConfig(),
		MaxGames: *maxGames,
	}
	if *historyPath != "" {
		store, err := history.Open(*historyPath)
		if err != nil {
			log.WithError(err).Fatal("failed to open game history")
		}
		defer store.Close()
		opts.History = store
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.New(opts).Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": *addr, "history": *historyPath != ""}).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
		log.Info("stopped")
	}
}
