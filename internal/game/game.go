// Package game runs rounds of the island guessing game: the Controller holds
// the round state machine and Game drives it from a tcell screen.
package game

import (
	"context"
	"fmt"
	"log/slog"

	"guess-the-island/internal/board"
	"guess-the-island/internal/heights"
	"guess-the-island/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Game is the top-level orchestrator for one player.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	ctrl     *Controller
	source   heights.Source
	logger   *slog.Logger

	cursor  render.Cursor
	message string
	hover   bool
	mouse   mouseTracker
}

// New creates a Game on the process terminal.
func New(source heights.Source, logger *slog.Logger) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen, source, logger), nil
}

// NewWithScreen creates a Game on an already initialised screen.
func NewWithScreen(screen tcell.Screen, source heights.Source, logger *slog.Logger) *Game {
	screen.EnableMouse()
	return &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		ctrl:     NewController(),
		source:   source,
		logger:   logger,
	}
}

// Controller exposes the round state, mainly for callers that report stats.
func (g *Game) Controller() *Controller { return g.ctrl }

// Run plays rounds until the player quits or ctx is cancelled. The screen is
// finalised on return.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Fini()

	stop := context.AfterFunc(ctx, func() {
		_ = g.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		if !g.startRound(ctx) {
			return ctx.Err()
		}
		if !g.playRound(ctx) {
			return ctx.Err()
		}
		if !g.showEndScreen(ctx) {
			return ctx.Err()
		}
	}
}

// startRound fetches a grid and starts a round, offering a retry on failure.
// Returns false when the player quits.
func (g *Game) startRound(ctx context.Context) bool {
	for {
		g.renderer.DrawLoading()
		err := g.loadRound(ctx)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		g.logger.Warn("round setup failed", "error", err)
		g.renderer.DrawError(err)
		if !g.waitRestart(ctx, func() { g.renderer.DrawError(err) }) {
			return false
		}
	}
}

// loadRound fetches one grid and hands it to the controller.
func (g *Game) loadRound(ctx context.Context) error {
	grid, err := g.source.Fetch(ctx)
	if err != nil {
		return err
	}
	if err := g.ctrl.StartRound(grid); err != nil {
		return err
	}
	b := g.ctrl.Board()
	g.cursor = render.Cursor{X: b.Cols / 2, Y: b.Rows / 2}
	g.message = "Click the island you think is tallest, then Guess."
	if len(b.Islands) == 0 {
		g.message = "No islands on this map. Press R for another."
	}
	g.logger.Info("round started",
		"round", g.ctrl.Round(), "rows", b.Rows, "cols", b.Cols, "islands", len(b.Islands))
	return nil
}

// playRound runs the input loop until the round ends. Returns false when the
// player quits.
func (g *Game) playRound(ctx context.Context) bool {
	for g.ctrl.Phase() == PhasePlaying {
		g.draw()
		ev := g.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return false
		}
		if !g.handleEvent(ctx, ev) {
			return false
		}
	}
	return true
}

func (g *Game) draw() {
	stats := g.ctrl.Stats()
	acc, ok := stats.Accuracy()
	g.renderer.DrawFrame(g.ctrl.Board(), g.cursor, render.HUD{
		Lives:       g.ctrl.Lives(),
		MaxLives:    StartingLives,
		Accuracy:    acc,
		HasAccuracy: ok,
		Round:       g.ctrl.Round(),
		Message:     g.message,
		GuessHover:  g.hover,
	})
}

// handleEvent applies one input event to the round. Returns false to quit.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventMouse:
		g.handleMouse(ev)
	case *tcell.EventKey:
		return g.handleAction(ctx, keyToAction(ev))
	}
	return true
}

func (g *Game) handleMouse(ev *tcell.EventMouse) {
	sx, sy := ev.Position()
	l := g.renderer.Layout()
	g.hover = l.GuessButton().Contains(sx, sy)
	if !g.mouse.click(ev) {
		return
	}
	if g.hover {
		g.guess()
		return
	}
	if x, y, ok := l.ScreenToTile(sx, sy); ok {
		g.cursor.X, g.cursor.Y = x, y
		g.pick(x, y)
	}
}

func (g *Game) handleAction(ctx context.Context, a Action) bool {
	switch a {
	case ActionQuit:
		return false
	case ActionGuess:
		g.guess()
	case ActionPick:
		g.cursor.Visible = true
		g.pick(g.cursor.X, g.cursor.Y)
	case ActionRestart:
		// Only an empty map can be skipped mid-round.
		if len(g.ctrl.Board().Islands) == 0 {
			return g.startRound(ctx)
		}
	default:
		dx, dy := actionToDelta(a)
		if dx == 0 && dy == 0 {
			return true
		}
		b := g.ctrl.Board()
		nx, ny := g.cursor.X+dx, g.cursor.Y+dy
		if b.InBounds(nx, ny) {
			g.cursor.X, g.cursor.Y = nx, ny
		}
		g.cursor.Visible = true
	}
	return true
}

func (g *Game) pick(x, y int) {
	if err := g.ctrl.Select(x, y); err != nil {
		g.logger.Debug("select rejected", "x", x, "y", y, "error", err)
		return
	}
	sel := g.ctrl.Board().Selected()
	switch {
	case sel == nil:
		g.message = ""
	case sel.Status == board.Guessed:
		g.message = "You already ruled that island out."
	default:
		g.message = fmt.Sprintf("Island of %d tiles selected.", sel.Size())
	}
}

func (g *Game) guess() {
	sel := g.ctrl.Board().Selected()
	out := g.ctrl.Guess()
	switch out {
	case board.NoDecision:
		if sel == nil {
			g.message = "Select an island first."
		} else {
			g.message = "That island was already guessed."
		}
		return
	case board.Correct:
		g.message = "Correct!"
	case board.Incorrect:
		g.message = fmt.Sprintf("Not the tallest. %d lives left.", g.ctrl.Lives())
	}
	g.logger.Info("guess",
		"round", g.ctrl.Round(), "island", sel.ID, "outcome", out.String(),
		"lives", g.ctrl.Lives(), "phase", g.ctrl.Phase().String())
}

// showEndScreen renders the round result and returns true if the player
// wants another round.
func (g *Game) showEndScreen(ctx context.Context) bool {
	won := g.ctrl.Phase() == PhaseWon
	stats := g.ctrl.Stats()
	acc, ok := stats.Accuracy()
	hud := render.HUD{Accuracy: acc, HasAccuracy: ok, Round: g.ctrl.Round()}
	g.logger.Info("round over", "round", g.ctrl.Round(), "won", won,
		"total_guesses", stats.TotalGuesses, "correct_guesses", stats.CorrectGuesses)

	redraw := func() { g.renderer.DrawEndScreen(won, hud) }
	redraw()
	return g.waitRestart(ctx, redraw)
}

// waitRestart blocks until the player asks for a new round (R, Enter or a
// click on the Play Again button) or quits.
func (g *Game) waitRestart(ctx context.Context, redraw func()) bool {
	for {
		ev := g.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return false
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
			redraw()
		case *tcell.EventMouse:
			sx, sy := ev.Position()
			if g.mouse.click(ev) && g.renderer.Layout().PlayAgainButton().Contains(sx, sy) {
				return true
			}
		case *tcell.EventKey:
			switch keyToAction(ev) {
			case ActionRestart, ActionGuess:
				return true
			case ActionQuit:
				return false
			}
		}
	}
}
