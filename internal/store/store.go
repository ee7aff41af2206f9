// Package store persists game state under human readable slugs.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vancomm/receiptsweeper/internal/mines"
)

const KeyPrefix = "receiptsweeper:"

var (
	ErrNotFound  = errors.New("game not found")
	ErrSlugTaken = errors.New("slug already taken")
	ErrBadName   = errors.New("bad name for store")
)

// State is everything needed to pick a game back up: the raw board, whether
// it has ended, and the last status line shown to the player.
type State struct {
	Board    mines.Board `json:"board"`
	GameOver bool        `json:"gameOver"`
	Status   string      `json:"status"`
}

type Store interface {
	// Create saves state under a new slug, or fails with [ErrSlugTaken].
	Create(ctx context.Context, slug string, state State) error
	Save(ctx context.Context, slug string, state State) error
	// Load fails with [ErrNotFound] when slug was never saved.
	Load(ctx context.Context, slug string) (State, error)
	Delete(ctx context.Context, slug string) error
	Close() error
}

func encode(state State) ([]byte, error) {
	b, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("unable to encode game state: %w", err)
	}
	return b, nil
}

func decode(data []byte) (State, error) {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("unable to decode game state: %w", err)
	}
	return state, nil
}
