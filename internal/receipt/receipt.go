// Package receipt turns board snapshots into receipt printer output and
// delivers it to printers.
package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vancomm/receiptsweeper/internal/mines"
)

// Print is one receipt strip: the board after an action plus the status
// line the player saw.
type Print struct {
	Slug       string       `json:"slug,omitempty"`
	Action     mines.Action `json:"action"`
	Coordinate mines.Point  `json:"coordinate"`
	BoardLines []string     `json:"boardLines"`
	Status     string       `json:"statusLine"`
	Timestamp  string       `json:"timestamp"`
}

func New(
	slug string, action mines.Action, at mines.Point,
	board mines.Board, status string, now time.Time,
) Print {
	return Print{
		Slug:       slug,
		Action:     action,
		Coordinate: at,
		BoardLines: Rows(board),
		Status:     status,
		Timestamp:  now.Format(time.TimeOnly),
	}
}

func token(c mines.Cell) string {
	switch {
	case c.Display == mines.Flagged:
		return "F"
	case c.Display == mines.Hidden:
		return "."
	case c.HasMine:
		return "*"
	case c.AdjacentMines == 0:
		return " "
	default:
		return strconv.Itoa(c.AdjacentMines)
	}
}

// Rows renders every board row as space separated cell tokens.
func Rows(b mines.Board) []string {
	rows := make([]string, mines.Size)
	tokens := make([]string, mines.Size)
	for y := range mines.Size {
		for x := range mines.Size {
			tokens[x] = token(b.At(mines.Point{X: x, Y: y}))
		}
		rows[y] = strings.Join(tokens, " ")
	}
	return rows
}

// Format lays a print out the way the printer feeds it: column axis, one
// labelled line per row, then the action, status and time lines.
func Format(p Print) []string {
	axis := make([]string, mines.Size)
	for x := range mines.Size {
		axis[x] = strconv.Itoa(x)
	}
	lines := make([]string, 0, len(p.BoardLines)+4)
	lines = append(lines, "   "+strings.Join(axis, " "))
	for y, row := range p.BoardLines {
		lines = append(lines, fmt.Sprintf(" %c %s", 'A'+y, row))
	}
	lines = append(lines,
		fmt.Sprintf("ACTION: %s @ (%d,%d)",
			strings.ToUpper(p.Action.String()), p.Coordinate.X, p.Coordinate.Y),
		"STATUS: "+p.Status,
		"TIME: "+p.Timestamp,
	)
	return lines
}
