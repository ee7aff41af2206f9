package mines

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func naiveAdjacent(b Board, x, y int) (count int) {
	for yy := y - 1; yy <= y+1; yy++ {
		for xx := x - 1; xx <= x+1; xx++ {
			if xx == x && yy == y {
				continue
			}
			if xx < 0 || xx >= Size || yy < 0 || yy >= Size {
				continue
			}
			if b.At(Point{xx, yy}).HasMine {
				count++
			}
		}
	}
	return
}

func TestPlaceMines(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		b := placeMines(r)
		require.Equal(t, MineCount, b.Mines())
		for y := range Size {
			for x := range Size {
				c := b.At(Point{x, y})
				require.Equal(t, Hidden, c.Display)
				if !c.HasMine {
					require.Equal(t, naiveAdjacent(b, x, y), c.AdjacentMines, "cell (%d, %d)", x, y)
				}
			}
		}
	}
}

func TestLayMines(t *testing.T) {
	b := LayMines(Point{0, 0}, Point{0, 0}, Point{1, 1}, Point{10, 3}, Point{-1, -1})

	assert.Equal(t, 2, b.Mines())
	assert.Equal(t, 2, b.At(Point{1, 0}).AdjacentMines)
	assert.Equal(t, 2, b.At(Point{0, 1}).AdjacentMines)
	assert.Equal(t, 1, b.At(Point{2, 2}).AdjacentMines)
	assert.Equal(t, 0, b.At(Point{3, 3}).AdjacentMines)
}

func TestNeighbours(t *testing.T) {
	tests := []struct {
		p    Point
		want int
	}{
		{Point{0, 0}, 3},
		{Point{9, 9}, 3},
		{Point{0, 5}, 5},
		{Point{5, 9}, 5},
		{Point{4, 4}, 8},
	}
	for _, test := range tests {
		t.Run(test.p.String(), func(t *testing.T) {
			ns := test.p.neighbours()
			assert.Len(t, ns, test.want)
			for _, n := range ns {
				assert.True(t, n.InBounds())
				assert.NotEqual(t, test.p, n)
			}
		})
	}
}

func TestBoardJSON(t *testing.T) {
	g := Restore(wallBoard(), false)
	g.Apply(Test, Point{0, 0})
	g.Apply(Flag, Point{7, 7})
	want := g.Board()

	data, err := json.Marshal(want)
	require.NoError(t, err)

	var rows [][]map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, Size)
	assert.Equal(t, "revealed", rows[0][0]["display"])
	assert.Equal(t, "flagged", rows[7][7]["display"])
	assert.Equal(t, true, rows[3][5]["hasMine"])

	var got Board
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Empty(t, cmp.Diff(want, got, boardCmp))
}

func TestBoardJSONRejects(t *testing.T) {
	row := func(display string) string {
		s := "["
		for x := range Size {
			if x > 0 {
				s += ","
			}
			s += `{"hasMine":false,"adjacentMines":0,"display":"` + display + `"}`
		}
		return s + "]"
	}
	board := func(rows int, display string) string {
		s := "["
		for y := range rows {
			if y > 0 {
				s += ","
			}
			s += row(display)
		}
		return s + "]"
	}

	var b Board
	assert.NoError(t, json.Unmarshal([]byte(board(Size, "hidden")), &b))
	assert.Error(t, json.Unmarshal([]byte(board(Size-1, "hidden")), &b))
	assert.Error(t, json.Unmarshal([]byte(board(Size, "exploded")), &b))
	assert.Error(t, json.Unmarshal([]byte(`{"cells":[]}`), &b))
}

func TestMasked(t *testing.T) {
	g := Restore(wallBoard(), false)
	g.Apply(Test, Point{0, 0})

	m := g.Board().Masked()

	assert.Zero(t, m.Mines())
	assert.Equal(t, 3, m.At(Point{4, 4}).AdjacentMines)
	assert.Zero(t, m.At(Point{6, 4}).AdjacentMines)
	assert.True(t, g.Board().At(Point{5, 0}).HasMine)
}

func TestDisplayText(t *testing.T) {
	for _, d := range []Display{Hidden, Revealed, Flagged} {
		text, err := d.MarshalText()
		require.NoError(t, err)
		var got Display
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, d, got)
	}
	_, err := Display(7).MarshalText()
	assert.Error(t, err)
}
