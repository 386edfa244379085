package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/jardin/internal/celestial"
	"github.com/tomz197/jardin/internal/config"
	"github.com/tomz197/jardin/internal/draw"
	"github.com/tomz197/jardin/internal/hub"
	"github.com/tomz197/jardin/internal/loop"
)

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
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config",
		"host", settings.SSHHost, "port", settings.SSHPort,
		"hostKeyPath", settings.HostKeyPath, "workingDir", workingDir,
		"bodies", registry.Size(), "strict", settings.Strict)

	// Shared by all SSH sessions; each session still plays its own game.
	ctx, cancelHub := context.WithCancel(context.Background())
	sessions := hub.New(logger.WithPrefix("hub"))
	go sessions.Run(ctx)

	app := &app{
		hub:      sessions,
		registry: registry,
		logger:   logger,
		strict:   settings.Strict,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSHHost, settings.SSHPort)),
		wish.WithMiddleware(
			app.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for pointer input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if settings.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(settings.SSHHost, settings.SSHPort))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify visitors and wait for them to leave
	sessions.Shutdown(settings.ShutdownTimeout)

	// Stop accepting sessions before the hub stops reading registrations
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}

	cancelHub()
	logger.Info("hub stopped", "visitors", sessions.Stats().Visitors, "completed", sessions.Stats().Completed)
}

type app struct {
	hub      *hub.Hub
	registry *celestial.Registry
	logger   *log.Logger
	strict   bool
}

// middleware runs the greeting for one SSH session.
func (a *app) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		a.logger.Info("new session", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		c := loop.NewClient(a.hub, bufio.NewReader(sess), sess, loop.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Registry:     a.registry,
			Logger:       a.logger,
			Strict:       a.strict,
		})
		if err := c.Run(); err != nil {
			a.logger.Error("session error", "user", sess.User(), "err", err)
		}

		a.logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
