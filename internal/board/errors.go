package board

import "errors"

var (
	// ErrInvalidInput wraps every height-grid precondition violation.
	ErrInvalidInput = errors.New("board: invalid height grid")
	// ErrNoIslands is returned by Highest on an all-water board.
	ErrNoIslands = errors.New("board: no islands on board")
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("board: coordinates out of bounds")
)
