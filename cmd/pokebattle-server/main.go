package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"

	"pokebattle/arena"
	"pokebattle/internal/api"
	"pokebattle/internal/cache"
	"pokebattle/internal/config"
	"pokebattle/internal/pokeapi"
	"pokebattle/internal/pokedex"
)

func main() {
	configPath := flag.String("config", "pokebattle.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("config load failed")
	}

	logger := buildLogger(cfg.Logging)

	// route the engine's internal logging through the same zerolog sink
	engineLogger := logger.With().Str("component", "arena").Logger()
	arena.SetInternalLogger(zerologr.New(&engineLogger))

	store, err := cache.Open(cfg.Cache.Path, cfg.Cache.TTL.Std(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cache open failed")
	}
	defer store.Close()

	client := pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout.Std(), logger)
	dex := pokedex.NewService(client, store, logger)
	server := api.NewServer(dex, store, cfg, logger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Router(),
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown did not complete cleanly")
	}
}

func buildLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.With().Timestamp().Logger().Level(level)
}
