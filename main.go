package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sahanadeepthi-A/Live-Chat-Room/config"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/identity"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/protocol"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/registry"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/web"
	ws "github.com/Sahanadeepthi-A/Live-Chat-Room/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	reg := registry.New()
	dispatcher := ws.NewDispatcher(reg)
	handler := protocol.NewHandler(reg, dispatcher, cfg.Rooms)
	signer := identity.NewSigner(cfg.SecretKey)
	wsServer := ws.NewServer(dispatcher, handler, signer, cfg.CORSOrigins)

	router := web.NewRouter(web.Deps{
		Registry: reg,
		Signer:   signer,
		WS:       wsServer,
		Rooms:    cfg.Rooms,
		Origins:  cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "rooms", cfg.Rooms)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func setupLogger(level string) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
