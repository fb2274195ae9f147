package game

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"guess-the-island/internal/board"
	"guess-the-island/internal/heights"
	"guess-the-island/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── helpers ──────────────────────────────────────────────────────────────────

type stubSource struct {
	grids []heights.Grid
	errs  []error
	calls int
}

func (s *stubSource) Fetch(ctx context.Context) (heights.Grid, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return heights.Grid{}, s.errs[i]
	}
	return s.grids[i%len(s.grids)], nil
}

func newSimScreen(t *testing.T) tcell.Screen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, ss.Init())
	ss.SetSize(40, 12)
	return ss
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestGame builds a Game on a simulation screen. Run finalises the
// screen itself, so only tests that skip Run register the cleanup.
func newTestGame(t *testing.T, src heights.Source) *Game {
	t.Helper()
	return NewWithScreen(newSimScreen(t), src, quietLogger())
}

// click sends a press and release of the primary button on screen cell (sx, sy).
func click(t *testing.T, g *Game, sx, sy int) {
	t.Helper()
	ctx := context.Background()
	require.True(t, g.handleEvent(ctx, tcell.NewEventMouse(sx, sy, tcell.Button1, tcell.ModNone)))
	require.True(t, g.handleEvent(ctx, tcell.NewEventMouse(sx, sy, tcell.ButtonNone, tcell.ModNone)))
}

func clickTile(t *testing.T, g *Game, x, y int) {
	t.Helper()
	sx, sy := g.renderer.Layout().TileToScreen(x, y)
	click(t, g, sx+1, sy)
}

func clickGuess(t *testing.T, g *Game) {
	t.Helper()
	btn := g.renderer.Layout().GuessButton()
	click(t, g, btn.X1+2, btn.Y1)
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func loadedGame(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(t, &stubSource{grids: []heights.Grid{fourIslands}})
	t.Cleanup(g.screen.Fini)
	require.NoError(t, g.loadRound(context.Background()))
	g.draw()
	return g
}

// ─── input handling ──────────────────────────────────────────────────────────

func TestKeyToAction(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"enter guesses", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionGuess},
		{"g guesses", key('g'), ActionGuess},
		{"space guesses", key(' '), ActionGuess},
		{"x picks", key('x'), ActionPick},
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionCursorUp},
		{"vi left", key('h'), ActionCursorLeft},
		{"r restarts", key('R'), ActionRestart},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"q quits", key('q'), ActionQuit},
		{"unbound", key('z'), ActionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, keyToAction(tc.ev))
		})
	}
}

func TestMouseTrackerReportsPressEdgeOnly(t *testing.T) {
	var m mouseTracker
	assert.True(t, m.click(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)))
	assert.False(t, m.click(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone)), "drag is not a click")
	assert.False(t, m.click(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone)))
	assert.True(t, m.click(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone)))
}

func TestClickSelectsIsland(t *testing.T) {
	g := loadedGame(t)
	clickTile(t, g, 4, 0)
	sel := g.ctrl.Board().Selected()
	require.NotNil(t, sel)
	assert.Equal(t, board.Selected, sel.Status)
	assert.Equal(t, 4, g.cursor.X)

	clickTile(t, g, 1, 1) // water
	assert.Nil(t, g.ctrl.Board().Selected())
}

func TestClickOnHUDDoesNotSelect(t *testing.T) {
	g := loadedGame(t)
	clickTile(t, g, 0, 0)
	l := g.renderer.Layout()
	click(t, g, l.OffsetX, l.HUDTop()+1)
	assert.NotNil(t, g.ctrl.Board().Selected(), "HUD clicks never reach the board")
}

func TestGuessButtonWinsRound(t *testing.T) {
	g := loadedGame(t)
	clickTile(t, g, 4, 0)
	clickGuess(t, g)
	assert.Equal(t, PhaseWon, g.ctrl.Phase())
	assert.Equal(t, "Correct!", g.message)
}

func TestGuessWithoutSelectionExplains(t *testing.T) {
	g := loadedGame(t)
	require.True(t, g.handleEvent(context.Background(), key('g')))
	assert.Equal(t, "Select an island first.", g.message)
	assert.Equal(t, 0, g.ctrl.Stats().TotalGuesses)
}

func TestKeyboardCursorPicksAndGuesses(t *testing.T) {
	g := loadedGame(t)
	ctx := context.Background()
	// Cursor starts at the centre (2,1); walk to (0,0).
	for _, r := range []rune{'h', 'h', 'k', 'k', 'h'} {
		require.True(t, g.handleEvent(ctx, key(r)))
	}
	assert.Equal(t, 0, g.cursor.X)
	assert.Equal(t, 0, g.cursor.Y)
	assert.True(t, g.cursor.Visible)

	require.True(t, g.handleEvent(ctx, key('x')))
	require.True(t, g.handleEvent(ctx, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.Equal(t, StartingLives-1, g.ctrl.Lives())
	assert.Equal(t, board.Guessed, g.ctrl.Board().StatusAt(0, 0))

	require.True(t, g.handleEvent(ctx, key('x')))
	assert.Equal(t, "You already ruled that island out.", g.message)
}

func TestQuitKey(t *testing.T) {
	g := loadedGame(t)
	assert.False(t, g.handleEvent(context.Background(), key('q')))
}

// ─── full loop ───────────────────────────────────────────────────────────────

func TestRunQuitsFromPlay(t *testing.T) {
	src := &stubSource{grids: []heights.Grid{fourIslands}}
	g := newTestGame(t, src)
	require.NoError(t, g.screen.PostEvent(key('q')))
	assert.NoError(t, g.Run(context.Background()))
	assert.Equal(t, 1, src.calls)
}

func TestRunPlaysRoundAndRestarts(t *testing.T) {
	src := &stubSource{grids: []heights.Grid{fourIslands}}
	g := newTestGame(t, src)

	w, h := g.screen.Size()
	l := render.NewLayout(fourIslands.Rows, fourIslands.Cols, w, h)
	sx, sy := l.TileToScreen(4, 0)
	events := []tcell.Event{
		tcell.NewEventMouse(sx, sy, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(sx, sy, tcell.ButtonNone, tcell.ModNone),
		key('g'), // wins round 1
		key('r'), // play again
		key('q'), // quit round 2
	}
	for _, ev := range events {
		require.NoError(t, g.screen.PostEvent(ev))
	}

	assert.NoError(t, g.Run(context.Background()))
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 2, g.ctrl.Round())
	assert.Equal(t, Stats{TotalGuesses: 1, CorrectGuesses: 1}, g.ctrl.Stats())
}

func TestRunRetriesFailedFetch(t *testing.T) {
	src := &stubSource{
		grids: []heights.Grid{fourIslands},
		errs:  []error{errors.New("network down")},
	}
	g := newTestGame(t, src)
	require.NoError(t, g.screen.PostEvent(key('r')))
	require.NoError(t, g.screen.PostEvent(key('q')))

	assert.NoError(t, g.Run(context.Background()))
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 1, g.ctrl.Round())
}

func TestRunStopsOnCancel(t *testing.T) {
	g := newTestGame(t, &stubSource{grids: []heights.Grid{fourIslands}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, g.Run(ctx), context.Canceled)
}
