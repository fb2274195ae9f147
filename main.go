// guess-the-island is a terminal game: find the island with the greatest
// average height before running out of lives.
//
//	go run . [-source http|file|random] [-rows 30] [-cols 30] [-log game.log]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"guess-the-island/internal/game"
	"guess-the-island/internal/heights"

	"golang.org/x/term"
)

func main() {
	opts := heights.DefaultOptions()
	opts.RegisterFlags(flag.CommandLine)
	logPath := flag.String("log", "", "write a structured log to this file")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "error: guess-the-island needs an interactive terminal")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	src, err := heights.FromOptions(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	g, err := game.New(src, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := g.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("game stopped", "error", err)
	}
	stats := g.Controller().Stats()
	if acc, ok := stats.Accuracy(); ok {
		fmt.Printf("%d of %d guesses correct (%.2f%%)\n", stats.CorrectGuesses, stats.TotalGuesses, acc*100)
	}
}

// newLogger writes JSON to path, or discards everything when path is empty:
// the terminal belongs to the game.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}
