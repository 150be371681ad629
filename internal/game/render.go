package game

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ob-ivan/bot2048/internal/board"
)

const cellWidth = 6

// tileColors maps tile values to ANSI 256 background colours.
var tileColors = map[int]string{
	2:    "254",
	4:    "230",
	8:    "216",
	16:   "209",
	32:   "203",
	64:   "196",
	128:  "228",
	256:  "227",
	512:  "226",
	1024: "220",
	2048: "214",
}

var (
	emptyStyle = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("240"))
	tileStyle  = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Bold(true).Foreground(lipgloss.Color("0"))
	bigStyle   = tileStyle.Background(lipgloss.Color("93")).Foreground(lipgloss.Color("15"))
)

// Render draws b as a grid. Colour is used only when color is true.
func Render(b board.Board, color bool) string {
	rows := make([]string, 0, board.Size)
	for i := range board.Size {
		cells := make([]string, 0, board.Size)
		for j := range board.Size {
			cells = append(cells, renderCell(b.Value(i, j), color))
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n")
}

func renderCell(v int, color bool) string {
	text := "."
	if v != 0 {
		text = strconv.Itoa(v)
	}
	if !color {
		return padCenter(text, cellWidth)
	}

	switch bg, ok := tileColors[v]; {
	case v == 0:
		return emptyStyle.Render(text)
	case ok:
		return tileStyle.Background(lipgloss.Color(bg)).Render(text)
	default:
		return bigStyle.Render(text)
	}
}

func padCenter(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
