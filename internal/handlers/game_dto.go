package handlers

import (
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vancomm/receiptsweeper/internal/mines"
	"github.com/vancomm/receiptsweeper/internal/store"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type MoveDTO struct {
	Action mines.Action `schema:"action,required"`
	Cell   string       `schema:"cell,required"`
}

func ParseMoveDTO(src url.Values) (MoveDTO, error) {
	var dto MoveDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// GameDTO is what clients see of a game. Mines under cells that are not
// revealed are masked out.
type GameDTO struct {
	Slug     string      `json:"slug"`
	Token    string      `json:"token,omitempty"`
	Board    mines.Board `json:"board"`
	GameOver bool        `json:"game_over"`
	Win      bool        `json:"win"`
	Message  string      `json:"message"`
}

func NewGameDTO(slug string, res mines.Result) GameDTO {
	return GameDTO{
		Slug:     slug,
		Board:    res.Board.Masked(),
		GameOver: res.GameOver,
		Win:      res.Win,
		Message:  res.Message,
	}
}

// NewStateDTO reports a stored game. A finished game counts as won when
// every safe cell is revealed.
func NewStateDTO(slug string, state store.State) GameDTO {
	_, _, remaining := state.Board.Counts()
	return GameDTO{
		Slug:     slug,
		Board:    state.Board.Masked(),
		GameOver: state.GameOver,
		Win:      state.GameOver && remaining == 0,
		Message:  state.Status,
	}
}
