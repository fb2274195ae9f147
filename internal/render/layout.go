package render

// TileWidth is the number of terminal columns one board tile occupies.
const TileWidth = 2

// HUDRows is the number of terminal rows reserved below the board.
const HUDRows = 4

// Rect is a clickable screen region, inclusive of X1/Y1 and exclusive of X2/Y2.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Contains reports whether screen cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x < r.X2 && y >= r.Y1 && y < r.Y2
}

// Layout maps between board tiles and screen cells. The board is centred
// horizontally and the HUD sits directly under it.
type Layout struct {
	Rows, Cols       int
	OffsetX, OffsetY int
	ScreenW, ScreenH int
}

// NewLayout computes the layout of a rows x cols board on a screen of the
// given size.
func NewLayout(rows, cols, screenW, screenH int) Layout {
	l := Layout{Rows: rows, Cols: cols, ScreenW: screenW, ScreenH: screenH}
	if extra := screenW - cols*TileWidth; extra > 0 {
		l.OffsetX = extra / 2
	}
	return l
}

// Fits reports whether the board and HUD fit on screen.
func (l Layout) Fits() bool {
	return l.Cols*TileWidth <= l.ScreenW && l.Rows+HUDRows <= l.ScreenH
}

// TileToScreen returns the screen cell of the left column of tile (x, y).
func (l Layout) TileToScreen(x, y int) (sx, sy int) {
	return l.OffsetX + x*TileWidth, l.OffsetY + y
}

// ScreenToTile converts a screen cell to board coordinates. ok is false for
// cells outside the board, including the HUD rows.
func (l Layout) ScreenToTile(sx, sy int) (x, y int, ok bool) {
	dx := sx - l.OffsetX
	dy := sy - l.OffsetY
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	x, y = dx/TileWidth, dy
	if x >= l.Cols || y >= l.Rows {
		return 0, 0, false
	}
	return x, y, true
}

// HUDTop is the first screen row below the board.
func (l Layout) HUDTop() int { return l.OffsetY + l.Rows }

// GuessButton is the region of the guess button in the HUD.
func (l Layout) GuessButton() Rect {
	y := l.HUDTop() + 2
	x := l.OffsetX + (l.Cols*TileWidth-len(guessLabel))/2
	if x < 0 {
		x = 0
	}
	return Rect{X1: x, Y1: y, X2: x + len(guessLabel), Y2: y + 1}
}

// PlayAgainButton is the region of the restart button on the end screen.
func (l Layout) PlayAgainButton() Rect {
	y := l.ScreenH/2 + 2
	x := (l.ScreenW - len(playAgainLabel)) / 2
	if x < 0 {
		x = 0
	}
	return Rect{X1: x, Y1: y, X2: x + len(playAgainLabel), Y2: y + 1}
}

const (
	guessLabel     = "[ Guess ]"
	playAgainLabel = "[ Play Again ]"
)
