package game

import (
	"errors"
	"fmt"

	"guess-the-island/internal/board"
	"guess-the-island/internal/heights"
)

// StartingLives is the number of wrong guesses a round tolerates.
const StartingLives = 3

// Phase tracks the round state machine.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	}
	return "unknown"
}

// ErrNoBoard is returned when a command arrives before the first round.
var ErrNoBoard = errors.New("game: no round in progress")

// Stats counts guesses over the lifetime of a Controller. Restarting a round
// does not reset them.
type Stats struct {
	TotalGuesses   int
	CorrectGuesses int
}

// Accuracy returns the share of correct guesses in [0, 1]. ok is false until
// the first guess has been made.
func (s Stats) Accuracy() (ratio float64, ok bool) {
	if s.TotalGuesses == 0 {
		return 0, false
	}
	return float64(s.CorrectGuesses) / float64(s.TotalGuesses), true
}

// Controller owns the current round's board together with lives, phase and
// the running guess statistics. It is not safe for concurrent use; a single
// goroutine must drive it.
type Controller struct {
	board *board.Board
	lives int
	phase Phase
	stats Stats
	round int
}

// NewController returns a Controller with no round started.
func NewController() *Controller {
	return &Controller{}
}

// StartRound replaces the board with one built from grid and resets lives
// and phase. Statistics carry over. On error the previous round is kept.
func (c *Controller) StartRound(grid heights.Grid) error {
	b, err := board.New(grid.Rows, grid.Cols, grid.Heights)
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}
	c.board = b
	c.lives = StartingLives
	c.phase = PhasePlaying
	c.round++
	return nil
}

// Select forwards a click on (x, y) to the board. Clicks are ignored once
// the round is over.
func (c *Controller) Select(x, y int) error {
	if c.board == nil {
		return ErrNoBoard
	}
	if c.phase != PhasePlaying {
		return nil
	}
	return c.board.Select(x, y)
}

// Guess evaluates the selected island and advances the state machine.
// NoDecision leaves counters, lives and phase untouched.
func (c *Controller) Guess() board.Outcome {
	if c.board == nil || c.phase != PhasePlaying {
		return board.NoDecision
	}
	out := c.board.Guess()
	switch out {
	case board.Correct:
		c.stats.TotalGuesses++
		c.stats.CorrectGuesses++
		c.phase = PhaseWon
	case board.Incorrect:
		c.stats.TotalGuesses++
		if c.lives > 0 {
			c.lives--
		}
		if c.lives == 0 {
			c.phase = PhaseLost
		}
	}
	return out
}

// Board returns the current round's board, or nil before the first round.
func (c *Controller) Board() *board.Board { return c.board }

// Lives returns the lives left in the current round.
func (c *Controller) Lives() int { return c.lives }

// Phase returns the current round phase.
func (c *Controller) Phase() Phase { return c.phase }

// Stats returns the cumulative guess statistics.
func (c *Controller) Stats() Stats { return c.stats }

// Round returns the 1-based number of the current round, 0 before the first.
func (c *Controller) Round() int { return c.round }
