package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/jardin/internal/celestial"
	"github.com/tomz197/jardin/internal/config"
	"github.com/tomz197/jardin/internal/hub"
	"github.com/tomz197/jardin/internal/web"
)

//go:embed index.html
var htmlPage string

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	settings := config.FromEnv()
	logger := config.NewLogger(os.Stderr, settings.LogLevel)

	registry, err := celestial.LoadFile(settings.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load catalog", "path", settings.CatalogPath, "err", err)
	}

	ctx, cancelHub := context.WithCancel(context.Background())
	sessions := hub.New(logger.WithPrefix("hub"))
	go sessions.Run(ctx)

	addr := net.JoinHostPort(settings.WebHost, settings.WebPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           routes(settings.DisplayHost, registry, sessions, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting web server", "url", "http://"+addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")
	sessions.Shutdown(settings.ShutdownTimeout)

	// Stop accepting connections before the hub stops reading registrations
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}

	cancelHub()
}

func routes(sshHost string, registry *celestial.Registry, sessions hub.SessionHub, logger *log.Logger) http.Handler {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	mux.Handle("/ws", web.NewHandler(web.HandlerConfig{
		Registry: registry,
		Hub:      sessions,
		Logger:   logger.WithPrefix("ws"),
	}))

	mux.HandleFunc("/schema.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, web.Schema(), logger)
	})

	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, sessions.Stats(), logger)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any, logger *log.Logger) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Warn("write json", "err", err)
	}
}
