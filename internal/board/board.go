// Package board partitions a height grid into islands and tracks which island
// the player has selected and guessed during one round.
//
// Heights are supplied row-major: the height of column x in row y is
// heights[y*cols+x]. Zero is water.
package board

import "fmt"

// Outcome is the result of a guess.
type Outcome uint8

const (
	// NoDecision means nothing was evaluated: no island is selected, or the
	// selected island has already been guessed.
	NoDecision Outcome = iota
	Correct
	Incorrect
)

func (o Outcome) String() string {
	switch o {
	case NoDecision:
		return "no decision"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	}
	return "unknown"
}

// neighbours lists the eight offsets around a cell.
var neighbours = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Board owns the tile grid and the islands found on it for one round.
type Board struct {
	Rows, Cols int
	Tiles      [][]Tile // Tiles[y][x]
	Islands    []*Island

	highest  *Island
	selected *Island
}

// New builds a board from a row-major height slice and segments it into
// islands. The slice must hold exactly rows*cols non-negative values.
func New(rows, cols int, heights []int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidInput, rows, cols)
	}
	if len(heights) != rows*cols {
		return nil, fmt.Errorf("%w: got %d heights, want %d (%dx%d)",
			ErrInvalidInput, len(heights), rows*cols, rows, cols)
	}
	for i, h := range heights {
		if h < 0 {
			return nil, fmt.Errorf("%w: negative height %d at index %d", ErrInvalidInput, h, i)
		}
	}

	tiles := make([][]Tile, rows)
	for y := range tiles {
		tiles[y] = make([]Tile, cols)
		for x := range tiles[y] {
			tiles[y][x] = Tile{X: x, Y: y, Height: heights[y*cols+x], Island: NoIsland}
		}
	}
	b := &Board{Rows: rows, Cols: cols, Tiles: tiles}
	b.segment()
	return b, nil
}

// segment labels every land tile with the index of its 8-connected island.
// Cells are scanned row by row; each unlabelled land cell starts an
// iterative depth-first fill using an explicit stack.
func (b *Board) segment() {
	var stack [][2]int
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			start := &b.Tiles[y][x]
			if start.IsWater() || start.Island != NoIsland {
				continue
			}
			id := len(b.Islands)
			start.Island = id
			members := []*Tile{start}
			stack = append(stack[:0], [2]int{x, y})

			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, d := range neighbours {
					nx, ny := cur[0]+d[0], cur[1]+d[1]
					if !b.InBounds(nx, ny) {
						continue
					}
					n := &b.Tiles[ny][nx]
					if n.IsWater() || n.Island != NoIsland {
						continue
					}
					n.Island = id
					members = append(members, n)
					stack = append(stack, [2]int{nx, ny})
				}
			}

			isl := newIsland(id, members)
			b.Islands = append(b.Islands, isl)
			// Strict comparison keeps the first island found on ties.
			if b.highest == nil || isl.Height > b.highest.Height {
				b.highest = isl
			}
		}
	}
}

// InBounds reports whether (x, y) lies on the grid.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Cols && y >= 0 && y < b.Rows
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (b *Board) At(x, y int) *Tile {
	return &b.Tiles[y][x]
}

// IslandAt returns the island owning (x, y), or nil for water and
// out-of-bounds coordinates.
func (b *Board) IslandAt(x, y int) *Island {
	if !b.InBounds(x, y) {
		return nil
	}
	id := b.Tiles[y][x].Island
	if id == NoIsland {
		return nil
	}
	return b.Islands[id]
}

// StatusAt returns the status of the island owning (x, y). Water and
// out-of-bounds coordinates report Unselected.
func (b *Board) StatusAt(x, y int) Status {
	if isl := b.IslandAt(x, y); isl != nil {
		return isl.Status
	}
	return Unselected
}

// Highest returns the island with the greatest mean height. Ties go to the
// island discovered first in row-major order.
func (b *Board) Highest() (*Island, error) {
	if b.highest == nil {
		return nil, ErrNoIslands
	}
	return b.highest, nil
}

// Selected returns the currently selected island, or nil. The returned
// island may be in the Guessed state.
func (b *Board) Selected() *Island { return b.selected }

// Select handles a click on (x, y). Clicking water clears the selection.
// Clicking land releases the previous selection and selects the clicked
// island; a guessed island becomes the current selection but keeps its
// Guessed status.
func (b *Board) Select(x, y int) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfBounds, x, y, b.Rows, b.Cols)
	}
	isl := b.IslandAt(x, y)
	if isl == b.selected {
		return nil
	}
	if b.selected != nil {
		b.selected.setStatus(Unselected)
	}
	b.selected = isl
	if isl != nil {
		isl.setStatus(Selected)
	}
	return nil
}

// Guess evaluates the selected island. The highest island is reported
// Correct and left untouched; any other island is marked Guessed and
// reported Incorrect exactly once.
func (b *Board) Guess() Outcome {
	isl := b.selected
	if isl == nil || isl.Status == Guessed {
		return NoDecision
	}
	if isl == b.highest {
		return Correct
	}
	isl.Status = Guessed
	return Incorrect
}
