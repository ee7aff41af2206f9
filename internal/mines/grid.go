package mines

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	Size      = 10
	MineCount = 15
)

type Display uint8

const (
	Hidden Display = iota
	Revealed
	Flagged
)

func (d Display) String() string {
	switch d {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "display(" + strconv.Itoa(int(d)) + ")"
	}
}

// [Display] implements [encoding.TextMarshaler]
func (d Display) MarshalText() ([]byte, error) {
	if d > Flagged {
		return nil, fmt.Errorf("invalid cell display %d", d)
	}
	return []byte(d.String()), nil
}

func (d *Display) UnmarshalText(text []byte) error {
	switch string(text) {
	case "hidden":
		*d = Hidden
	case "revealed":
		*d = Revealed
	case "flagged":
		*d = Flagged
	default:
		return fmt.Errorf("invalid cell display %q", text)
	}
	return nil
}

// AdjacentMines is only meaningful when HasMine is false.
type Cell struct {
	HasMine       bool    `json:"hasMine"`
	AdjacentMines int     `json:"adjacentMines"`
	Display       Display `json:"display"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) InBounds() bool {
	return 0 <= p.X && p.X < Size && 0 <= p.Y && p.Y < Size
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Label renders p the way players type it: row letter, then column digit.
func (p Point) Label() string {
	if !p.InBounds() {
		return p.String()
	}
	return string([]byte{byte('A' + p.Y), byte('0' + p.X)})
}

func (p Point) index() int {
	return p.Y*Size + p.X
}

func (p Point) neighbours() []Point {
	ns := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := Point{p.X + dx, p.Y + dy}
			if (dx != 0 || dy != 0) && n.InBounds() {
				ns = append(ns, n)
			}
		}
	}
	return ns
}

// Board is a dense Size*Size grid stored row by row. It is a plain value:
// a copy never shares cells with the original.
type Board struct {
	cells [Size * Size]Cell
}

// LayMines returns a hidden board with mines at exactly the given points and
// adjacency counts filled in. Out of bounds points are ignored.
func LayMines(points ...Point) Board {
	var b Board
	for _, p := range points {
		if p.InBounds() {
			b.cells[p.index()].HasMine = true
		}
	}
	b.countAdjacent()
	return b
}

func (b *Board) countAdjacent() {
	for y := range Size {
		for x := range Size {
			p := Point{x, y}
			c := &b.cells[p.index()]
			if c.HasMine {
				continue
			}
			c.AdjacentMines = 0
			for _, n := range p.neighbours() {
				if b.cells[n.index()].HasMine {
					c.AdjacentMines++
				}
			}
		}
	}
}

// At returns the cell at p. p must be in bounds.
func (b Board) At(p Point) Cell {
	return b.cells[p.index()]
}

func (b Board) Mines() int {
	n := 0
	for _, c := range b.cells {
		if c.HasMine {
			n++
		}
	}
	return n
}

// Counts reports revealed and flagged cells, and how many safe cells are
// still waiting to be revealed.
func (b Board) Counts() (revealed, flagged, remaining int) {
	for _, c := range b.cells {
		switch c.Display {
		case Revealed:
			revealed++
		case Flagged:
			flagged++
		}
		if !c.HasMine && c.Display != Revealed {
			remaining++
		}
	}
	return
}

// Masked hides what a player could not know: mine placement and clue
// counts of every cell that is not revealed.
func (b Board) Masked() Board {
	for i := range b.cells {
		if b.cells[i].Display != Revealed {
			b.cells[i].HasMine = false
			b.cells[i].AdjacentMines = 0
		}
	}
	return b
}

func (b Board) Rows() [][]Cell {
	rows := make([][]Cell, Size)
	for y := range Size {
		rows[y] = make([]Cell, Size)
		copy(rows[y], b.cells[y*Size:(y+1)*Size])
	}
	return rows
}

func (b Board) String() string {
	var sb strings.Builder
	for y := range Size {
		for x := range Size {
			c := b.cells[y*Size+x]
			switch {
			case c.Display == Flagged:
				sb.WriteString("F ")
			case c.Display == Hidden:
				sb.WriteString(". ")
			case c.HasMine:
				sb.WriteString("* ")
			default:
				sb.WriteString(strconv.Itoa(c.AdjacentMines) + " ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// [Board] implements [json.Marshaler]
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Rows())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != Size {
		return fmt.Errorf("board must have %d rows, got %d", Size, len(rows))
	}
	var nb Board
	for y, row := range rows {
		if len(row) != Size {
			return fmt.Errorf("board row %d must have %d cells, got %d", y, Size, len(row))
		}
		for x, c := range row {
			if c.AdjacentMines < 0 || c.AdjacentMines > 8 {
				return fmt.Errorf("cell (%d, %d) has invalid adjacent mine count %d", x, y, c.AdjacentMines)
			}
			nb.cells[y*Size+x] = c
		}
	}
	*b = nb
	return nil
}
