package render

import (
	"guess-the-island/internal/board"
	"guess-the-island/internal/heights"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cursor is the keyboard cursor position on the board.
type Cursor struct {
	X, Y    int
	Visible bool
}

// Renderer draws a board and its HUD onto a tcell screen. It only reads
// board state.
type Renderer struct {
	screen tcell.Screen
	layout Layout
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Layout returns the layout used by the last DrawFrame.
func (r *Renderer) Layout() Layout { return r.layout }

// Relayout recomputes the layout for a board of the given size and the
// current screen size.
func (r *Renderer) Relayout(rows, cols int) Layout {
	w, h := r.screen.Size()
	r.layout = NewLayout(rows, cols, w, h)
	return r.layout
}

// DrawFrame renders the board, the cursor and the HUD and shows the result.
func (r *Renderer) DrawFrame(b *board.Board, cur Cursor, hud HUD) {
	r.screen.Clear()
	l := r.Relayout(b.Rows, b.Cols)
	if !l.Fits() {
		r.drawCentered(l.ScreenH/2, "Enlarge the terminal to see the whole map",
			tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	r.drawBoard(b)
	if cur.Visible && b.InBounds(cur.X, cur.Y) {
		r.drawCursor(b, cur)
	}
	r.drawHUD(hud)
	r.screen.Show()
}

// TileStyle returns the style a tile is drawn with: the terrain colour, or
// its gray equivalent when the tile's island is selected or guessed.
func TileStyle(b *board.Board, x, y int) tcell.Style {
	c := HeightColor(b.At(x, y).Height, heights.MaxHeight)
	st := tcell.StyleDefault
	switch b.StatusAt(x, y) {
	case board.Selected:
		c = Gray(c)
		st = st.Foreground(tcell.ColorWhite)
	case board.Guessed:
		c = Gray(c)
		st = st.Foreground(tcell.ColorDarkGray)
	}
	return st.Background(toTCell(c))
}

// TileGlyph is the character drawn in both columns of a tile.
func TileGlyph(status board.Status) rune {
	if status == board.Guessed {
		return '·'
	}
	return ' '
}

func (r *Renderer) drawBoard(b *board.Board) {
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			sx, sy := r.layout.TileToScreen(x, y)
			if sy >= r.layout.ScreenH || sx >= r.layout.ScreenW {
				continue
			}
			glyph := TileGlyph(b.StatusAt(x, y))
			style := TileStyle(b, x, y)
			for i := 0; i < TileWidth; i++ {
				r.screen.SetContent(sx+i, sy, glyph, nil, style)
			}
		}
	}
}

func (r *Renderer) drawCursor(b *board.Board, cur Cursor) {
	sx, sy := r.layout.TileToScreen(cur.X, cur.Y)
	style := TileStyle(b, cur.X, cur.Y).Foreground(tcell.ColorRed).Bold(true)
	r.screen.SetContent(sx, sy, '[', nil, style)
	r.screen.SetContent(sx+1, sy, ']', nil, style)
}

// drawText writes text starting at (x, y) and returns the column after it.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
	return col
}

// drawCentered writes text horizontally centred on row y.
func (r *Renderer) drawCentered(y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	x := (w - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	r.drawText(x, y, text, style)
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}
