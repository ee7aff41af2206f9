package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vancomm/receiptsweeper/internal/mines"
	"github.com/vancomm/receiptsweeper/internal/receipt"
	"github.com/vancomm/receiptsweeper/internal/session"
)

const help = `Commands:
  A3, 3a       test a cell (row letter and column digit, any order)
  t A3         test a cell
  f A3         flag or unflag a cell
  new          start over
  help         show this text
  quit         leave`

type Kind uint8

const (
	Move Kind = iota + 1
	New
	Help
	Quit
)

var ErrBadCommand = errors.New("unknown command, type help for a list")

type Command struct {
	Kind   Kind
	Action mines.Action
	Cell   string
}

// ParseCommand reads one input line. A blank line yields a zero Command.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	switch len(fields) {
	case 0:
		return Command{}, nil
	case 1:
		switch fields[0] {
		case "new", "n":
			return Command{Kind: New}, nil
		case "help", "h", "?":
			return Command{Kind: Help}, nil
		case "quit", "q", "exit":
			return Command{Kind: Quit}, nil
		}
		return Command{Kind: Move, Action: mines.Test, Cell: fields[0]}, nil
	case 2:
		switch fields[0] {
		case "t", "test":
			return Command{Kind: Move, Action: mines.Test, Cell: fields[1]}, nil
		case "f", "flag":
			return Command{Kind: Move, Action: mines.Flag, Cell: fields[1]}, nil
		}
	}
	return Command{}, ErrBadCommand
}

// Strips is a receipt printer that renders numbered strips to an output.
// Numbering restarts after [Strips.Reset], as a fresh roll of paper would.
type Strips struct {
	mu  sync.Mutex
	out io.Writer
	n   int
}

func NewStrips(out io.Writer) *Strips {
	return &Strips{out: out}
}

func (s *Strips) Print(ctx context.Context, p receipt.Print) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	_, err := fmt.Fprintln(s.out, Render(s.n, p))
	return err
}

func (s *Strips) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n = 0
}

// Play runs one interactive game on svc until the input ends or the player
// quits. svc is expected to print receipts to strips; a new game starts a
// new strip count.
func Play(ctx context.Context, svc *session.Service, strips *Strips, in io.Reader, out io.Writer) error {
	started, err := svc.Start(ctx)
	if err != nil {
		return err
	}
	slug := started.Slug
	fmt.Fprintln(out, "Type help for commands.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, err := ParseCommand(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, statusStyle.Render(err.Error()))
			continue
		}

		switch cmd.Kind {
		case Quit:
			return nil
		case Help:
			fmt.Fprintln(out, help)
		case New:
			strips.Reset()
			if _, err := svc.Reset(ctx, slug); err != nil {
				return err
			}
		case Move:
			res, err := svc.Act(ctx, slug, cmd.Action, cmd.Cell)
			if err != nil {
				return err
			}
			if res.Message == session.BadCellMessage {
				fmt.Fprintln(out, statusStyle.Render(res.Message))
			} else if res.GameOver {
				fmt.Fprintln(out, "Type new to play again.")
			}
		}
	}
}
