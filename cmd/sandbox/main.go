package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/toyswap/toyswap/internal/api/http"
	"github.com/toyswap/toyswap/internal/config"
	"github.com/toyswap/toyswap/internal/sandbox"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger = logger.Level(cfg.Level())

	store := sandbox.NewStore()
	apiServer := httpapi.NewServer(store, logger, httpapi.WithFailFirst(cfg.SandboxFailFirst))

	httpServer := &http.Server{
		Addr:         cfg.SandboxAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server
	go func() {
		logger.Info().Str("addr", cfg.SandboxAddr).Int("fail_first", cfg.SandboxFailFirst).Msg("sandbox started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	apiServer.Close()
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}
