package mines

import (
	"errors"
	"fmt"
	"strings"
)

type Action uint8

const (
	Test Action = iota + 1
	Flag
)

var (
	ErrBadAction = errors.New("action must be one of 'test', 'flag'")
	ErrBadCell   = errors.New("cell must be a row letter A-J and a column digit 0-9, like A3 or 5B")
)

func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "test":
		return Test, nil
	case "flag":
		return Flag, nil
	default:
		return 0, ErrBadAction
	}
}

func (a Action) String() string {
	switch a {
	case Test:
		return "test"
	case Flag:
		return "flag"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// [Action] implements [encoding.TextMarshaler]
func (a Action) MarshalText() ([]byte, error) {
	if a != Test && a != Flag {
		return nil, ErrBadAction
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) (err error) {
	*a, err = ParseAction(string(text))
	return
}

func isRow(c byte) bool   { return 'A' <= c && c < 'A'+Size }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// ParsePoint reads a two character cell token: a row letter A-J and a
// column digit 0-9 in either order, so "A3" and "3a" are the same cell.
func ParsePoint(token string) (Point, error) {
	s := strings.ToUpper(strings.TrimSpace(token))
	if len(s) != 2 {
		return Point{}, fmt.Errorf("%w (got %q)", ErrBadCell, token)
	}
	row, col := s[0], s[1]
	if isDigit(row) && isRow(col) {
		row, col = col, row
	}
	if !isRow(row) || !isDigit(col) {
		return Point{}, fmt.Errorf("%w (got %q)", ErrBadCell, token)
	}
	return Point{X: int(col - '0'), Y: int(row - 'A')}, nil
}
