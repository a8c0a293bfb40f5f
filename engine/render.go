package engine

import (
	"strings"

	"github.com/muesli/termenv"

	"gridgames/game"
)

var profile = termenv.ColorProfile()

// Render returns the board as text with colorized marks.
func Render(g game.Grid) string {
	rows, cols := g.Dims()
	var b strings.Builder
	for r := 0; r < rows; r++ {
		b.WriteString("|")
		for c := 0; c < cols; c++ {
			b.WriteString(" " + renderCell(g.At(r, c)) + " |")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(cell string) string {
	switch cell {
	case game.PlayerX:
		return termenv.String(cell).Foreground(profile.Color("1")).Bold().String()
	case game.PlayerO:
		return termenv.String(cell).Foreground(profile.Color("3")).Bold().String()
	}
	return cell
}
