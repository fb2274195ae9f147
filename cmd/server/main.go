// guess-the-island-server hosts the game over SSH. Every connection plays its
// own rounds with its own lives and accuracy. Build:
//
//	go build -o guess-the-island-server ./cmd/server
//
// Usage:
//
//	./guess-the-island-server [-port 2222] [-key server_host_key] [-source random]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	"guess-the-island/internal/game"
	"guess-the-island/internal/heights"
	internalssh "guess-the-island/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

const (
	defaultTerm = "xterm-256color"
	maxNameLen  = 16 // bytes
)

// allowedTerms limits the TERM values handed to terminfo lookup.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (generated if absent)")
	opts := heights.DefaultOptions()
	opts.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if _, err := heights.FromOptions(opts); err != nil {
		logger.Error("invalid source configuration", "error", err)
		os.Exit(1)
	}
	signer, err := loadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		logger.Error("host key", "error", err)
		os.Exit(1)
	}

	h := &host{opts: opts, logger: logger}
	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", *port),
		Handler:     h.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: anyone who can reach the port may play.
		HostSigners: []gossh.Signer{signer},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", srv.Addr, "source", opts.Kind)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
}

// host runs one game per SSH session.
type host struct {
	opts     heights.Options
	logger   *slog.Logger
	sessions atomic.Int64
}

// newSource builds the height source for the next session. A fixed random
// seed is offset by the session number so connections see different maps
// while a restart of the server replays the same sequence.
func (h *host) newSource() (heights.Source, error) {
	n := h.sessions.Add(1)
	opts := h.opts
	if opts.Kind == heights.KindRandom && opts.Seed != 0 {
		opts.Seed += n - 1
	}
	return heights.FromOptions(opts)
}

// handleSession blocks for the lifetime of the connection.
func (h *host) handleSession(s gossh.Session) {
	log := h.logger.With("user", sanitizeName(s.User()), "remote", s.RemoteAddr().String())

	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game needs a terminal. Connect with: ssh -t -p <port> <host>")
		_ = s.Exit(1)
		return
	}

	term := pty.Term
	if !allowedTerms[term] {
		log.Debug("unsupported TERM, using default", "term", term)
		term = defaultTerm
	}
	screen, err := newSessionScreen(s, pty, winCh, term)
	if err != nil {
		log.Warn("screen setup failed", "error", err)
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		_ = s.Exit(1)
		return
	}

	src, err := h.newSource()
	if err != nil {
		screen.Fini()
		log.Error("source", "error", err)
		return
	}

	log.Info("session started", "term", term)
	start := time.Now()
	g := game.NewWithScreen(screen, src, log)
	if err := g.Run(s.Context()); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn("game ended with error", "error", err)
	}
	stats := g.Controller().Stats()
	log.Info("session ended",
		"duration", time.Since(start).Round(time.Second),
		"rounds", g.Controller().Round(),
		"total_guesses", stats.TotalGuesses,
		"correct_guesses", stats.CorrectGuesses)
}

// termMu serialises the TERM environment variable around terminfo lookup,
// which reads it from the process environment.
var termMu sync.Mutex

func newSessionScreen(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window, term string) (tcell.Screen, error) {
	tty := internalssh.NewSessionTTY(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

// sanitizeName drops control characters from an SSH user name and limits it
// to maxNameLen bytes without splitting a rune.
func sanitizeName(name string) string {
	out := make([]byte, 0, maxNameLen)
	for _, r := range name {
		if r == utf8.RuneError || unicode.IsControl(r) {
			continue
		}
		if len(out)+utf8.RuneLen(r) > maxNameLen {
			break
		}
		out = utf8.AppendRune(out, r)
	}
	return string(out)
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	pemBlock, err := xssh.MarshalPrivateKey(key, "guess-the-island server")
	if err != nil {
		return nil, fmt.Errorf("marshal host key: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
		logger.Warn("host key not persisted", "path", path, "error", err)
	}
	return signer, nil
}
