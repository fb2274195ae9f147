package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// HUD is the status shown under the board.
type HUD struct {
	Lives, MaxLives int
	Accuracy        float64 // in [0, 1]
	HasAccuracy     bool
	Round           int
	Message         string
	GuessHover      bool
}

// FormatAccuracy renders an accuracy ratio the way the HUD shows it.
func FormatAccuracy(ratio float64) string {
	return fmt.Sprintf("Accuracy: %.2f%%", ratio*100)
}

// Hearts returns the lives indicator, full hearts first.
func Hearts(lives, maxLives int) string {
	s := ""
	for i := 0; i < maxLives; i++ {
		if i > 0 {
			s += " "
		}
		if i < lives {
			s += "♥"
		} else {
			s += "♡"
		}
	}
	return s
}

func (r *Renderer) drawHUD(h HUD) {
	l := r.layout
	top := l.HUDTop()
	r.drawHLine(top, tcell.ColorGray)

	y := top + 1
	end := r.drawText(l.OffsetX, y, Hearts(h.Lives, h.MaxLives), tcell.StyleDefault.Foreground(tcell.ColorRed))
	if h.HasAccuracy {
		acc := FormatAccuracy(h.Accuracy)
		x := l.OffsetX + l.Cols*TileWidth - len(acc)
		if x < end+2 {
			x = end + 2
		}
		r.drawText(x, y, acc, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}

	btn := l.GuessButton()
	btnStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(70, 130, 180))
	if h.GuessHover {
		btnStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(200, 200, 200))
	}
	r.drawText(btn.X1, btn.Y1, guessLabel, btnStyle)

	status := fmt.Sprintf("Round %d", h.Round)
	if h.Message != "" {
		status += "  " + h.Message
	}
	r.drawText(l.OffsetX, btn.Y1+1, status, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
}

// DrawEndScreen shows the round result and the restart button.
func (r *Renderer) DrawEndScreen(won bool, h HUD) {
	r.screen.Clear()
	w, sh := r.screen.Size()
	r.layout.ScreenW, r.layout.ScreenH = w, sh
	mid := sh / 2

	if won {
		r.drawCentered(mid-2, "🏆", tcell.StyleDefault)
		r.drawCentered(mid, "You Win!", tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 122, 16)).Bold(true))
	} else {
		r.drawCentered(mid-2, "☠", tcell.StyleDefault.Foreground(tcell.ColorRed))
		r.drawCentered(mid, "You Lose", tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}
	if h.HasAccuracy {
		r.drawCentered(mid+1, FormatAccuracy(h.Accuracy), tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}

	btn := r.layout.PlayAgainButton()
	r.drawText(btn.X1, btn.Y1, playAgainLabel,
		tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(70, 130, 180)))
	r.drawCentered(btn.Y1+2, "[R] Play again   [Q] Quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
	r.screen.Show()
}

// DrawError reports a failed map fetch.
func (r *Renderer) DrawError(err error) {
	r.screen.Clear()
	_, sh := r.screen.Size()
	mid := sh / 2
	r.drawCentered(mid-1, "Could not load a map", tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	r.drawCentered(mid, err.Error(), tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.drawCentered(mid+2, "[R] Retry   [Q] Quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
	r.screen.Show()
}

// DrawLoading is shown while a map is being fetched.
func (r *Renderer) DrawLoading() {
	r.screen.Clear()
	_, sh := r.screen.Size()
	r.drawCentered(sh/2, "Charting new islands...", tcell.StyleDefault.Foreground(tcell.ColorGray))
	r.screen.Show()
}
