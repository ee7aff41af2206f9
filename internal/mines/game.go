package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
)

const StartMessage = "New game started."

type Result struct {
	Board    Board  `json:"board"`
	GameOver bool   `json:"isGameOver"`
	Win      bool   `json:"isWin"`
	Message  string `json:"message"`
}

// Game is a single board plus its game-over flag. It is not safe for
// concurrent use.
type Game struct {
	board Board
	over  bool
	rnd   *rand.Rand
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// NewGame starts a game with a freshly mined board. A nil rnd falls back to
// a randomly seeded source.
func NewGame(rnd *rand.Rand) *Game {
	g := &Game{rnd: rnd}
	g.Reset()
	return g
}

// Restore builds a game around a previously persisted board.
func Restore(board Board, over bool) *Game {
	g := &Game{}
	g.Restore(board, over)
	return g
}

func (g *Game) Reset() Result {
	if g.rnd == nil {
		g.rnd = newRand()
	}
	g.board = placeMines(g.rnd)
	g.over = false
	return g.result(false, StartMessage)
}

func placeMines(r *rand.Rand) Board {
	var b Board
	for placed := 0; placed < MineCount; {
		c := &b.cells[Point{r.IntN(Size), r.IntN(Size)}.index()]
		if !c.HasMine {
			c.HasMine = true
			placed++
		}
	}
	b.countAdjacent()
	return b
}

// Restore adopts board and over verbatim. Adjacency counts are trusted to
// match the mine layout.
func (g *Game) Restore(board Board, over bool) {
	g.board = board
	g.over = over
}

func (g *Game) Board() Board {
	return g.board
}

func (g *Game) Over() bool {
	return g.over
}

func (g *Game) result(win bool, msg string) Result {
	return Result{Board: g.board, GameOver: g.over, Win: win, Message: msg}
}

func (g *Game) Apply(action Action, p Point) Result {
	if g.over {
		return g.result(false, "Game already ended. Start a new game.")
	}
	if !p.InBounds() {
		return g.result(false, "Coordinate is outside the 10x10 grid.")
	}

	switch action {
	case Flag:
		return g.flag(p)
	case Test:
		return g.test(p)
	default:
		return g.result(false, fmt.Sprintf("Unknown action %q.", action.String()))
	}
}

func (g *Game) flag(p Point) Result {
	c := &g.board.cells[p.index()]
	switch c.Display {
	case Revealed:
		return g.result(false, "Cannot flag a revealed cell.")
	case Flagged:
		c.Display = Hidden
		return g.result(false, fmt.Sprintf("Removed flag from %s.", p))
	default:
		c.Display = Flagged
		return g.result(false, fmt.Sprintf("Flagged %s.", p))
	}
}

func (g *Game) test(p Point) Result {
	c := g.board.cells[p.index()]
	if c.Display == Flagged {
		return g.result(false, "Cell is flagged. Unflag before testing.")
	}
	if c.HasMine {
		g.board.revealMines()
		g.over = true
		return g.result(false, fmt.Sprintf("Mine hit at %s. Game over.", p))
	}

	g.board.flood(p)
	win := g.board.cleared()
	g.over = win
	if win {
		return g.result(true, "All safe cells revealed. You win.")
	}
	return g.result(false, "Cell tested.")
}

// flood reveals start and, breadth first, every zero-clue region connected
// to it together with the clue tiles bordering that region. Flagged cells
// are never revealed.
func (b *Board) flood(start Point) {
	queue := []Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		c := &b.cells[p.index()]
		if c.Display != Hidden {
			continue
		}
		c.Display = Revealed
		if c.HasMine || c.AdjacentMines != 0 {
			continue
		}
		for _, n := range p.neighbours() {
			nc := b.cells[n.index()]
			if nc.Display == Hidden && !nc.HasMine {
				queue = append(queue, n)
			}
		}
	}
}

func (b *Board) revealMines() {
	for i := range b.cells {
		if b.cells[i].HasMine {
			b.cells[i].Display = Revealed
		}
	}
}

func (b *Board) cleared() bool {
	for _, c := range b.cells {
		if !c.HasMine && c.Display != Revealed {
			return false
		}
	}
	return true
}
