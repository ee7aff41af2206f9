package store

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores games in the game_state table created by the migrations
// in internal/database.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

type gameStateRow struct {
	Slug      string             `db:"slug"`
	Board     []byte             `db:"board"`
	GameOver  bool               `db:"game_over"`
	Status    string             `db:"status"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
	UpdatedAt pgtype.Timestamptz `db:"updated_at"`
}

func stateArgs(slug string, state State) (pgx.NamedArgs, error) {
	board, err := state.Board.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return pgx.NamedArgs{
		"slug":      slug,
		"board":     board,
		"game_over": state.GameOver,
		"status":    state.Status,
	}, nil
}

func (p *Postgres) Create(ctx context.Context, slug string, state State) error {
	args, err := stateArgs(slug, state)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO game_state (slug, board, game_over, status)
		VALUES (@slug, @board, @game_over, @status)`,
		args,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrSlugTaken
	}
	return err
}

func (p *Postgres) Save(ctx context.Context, slug string, state State) error {
	args, err := stateArgs(slug, state)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO game_state (slug, board, game_over, status)
		VALUES (@slug, @board, @game_over, @status)
		ON CONFLICT (slug) DO UPDATE SET
			board = excluded.board,
			game_over = excluded.game_over,
			status = excluded.status,
			updated_at = now()`,
		args,
	)
	return err
}

func (p *Postgres) Load(ctx context.Context, slug string) (State, error) {
	rows, _ := p.db.Query(ctx,
		"SELECT * FROM game_state WHERE slug = $1", slug,
	)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[gameStateRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, err
	}
	state := State{GameOver: row.GameOver, Status: row.Status}
	if err := state.Board.UnmarshalJSON(row.Board); err != nil {
		return State{}, err
	}
	return state, nil
}

func (p *Postgres) Delete(ctx context.Context, slug string) error {
	_, err := p.db.Exec(ctx, "DELETE FROM game_state WHERE slug = $1", slug)
	return err
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
