package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/jardin/internal/audio"
	"github.com/tomz197/jardin/internal/celestial"
	"github.com/tomz197/jardin/internal/config"
	"github.com/tomz197/jardin/internal/hub"
	"github.com/tomz197/jardin/internal/loop"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	settings := config.FromEnv()

	var logOut io.Writer = io.Discard
	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, settings.LogLevel)

	registry, err := celestial.LoadFile(settings.CatalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	player := audio.NewPlayer(0)
	if settings.Audio {
		if err := player.Initialize(); err != nil {
			logger.Warn("audio disabled", "err", err)
		}
		defer player.Cleanup()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// A local hub so the landing card shows the same counters as over SSH.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := hub.New(logger)
	go h.Run(ctx)

	c := loop.NewClient(h, bufio.NewReader(os.Stdin), os.Stdout, loop.ClientOptions{
		Username: os.Getenv("USER"),
		Registry: registry,
		Logger:   logger,
		Strict:   settings.Strict,
		Player:   player,
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
