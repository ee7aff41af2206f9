package store

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/receiptsweeper/internal/database"
	"github.com/vancomm/receiptsweeper/internal/mines"
)

func playedState() State {
	g := mines.NewGame(rand.New(rand.NewPCG(1, 2)))
	g.Apply(mines.Flag, mines.Point{X: 1, Y: 1})
	res := g.Apply(mines.Test, mines.Point{X: 4, Y: 6})
	return State{Board: res.Board, GameOver: res.GameOver, Status: res.Message}
}

func stateDiff(want, got State) string {
	return cmp.Diff(want, got, cmp.AllowUnexported(mines.Board{}))
}

// testStore runs the behaviour every backend shares.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	slug := "test-" + NewSlug(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 7)), plainAttempts)
	t.Cleanup(func() { s.Delete(ctx, slug) })

	t.Run("load missing", func(t *testing.T) {
		_, err := s.Load(ctx, slug)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	state := playedState()

	t.Run("create and load", func(t *testing.T) {
		require.NoError(t, s.Create(ctx, slug, state))
		got, err := s.Load(ctx, slug)
		require.NoError(t, err)
		assert.Empty(t, stateDiff(state, got))
	})

	t.Run("create taken", func(t *testing.T) {
		err := s.Create(ctx, slug, State{Status: "other"})
		assert.ErrorIs(t, err, ErrSlugTaken)
		got, err := s.Load(ctx, slug)
		require.NoError(t, err)
		assert.Equal(t, state.Status, got.Status)
	})

	t.Run("save overwrites", func(t *testing.T) {
		g := mines.Restore(state.Board, state.GameOver)
		res := g.Apply(mines.Flag, mines.Point{X: 1, Y: 1})
		next := State{Board: res.Board, GameOver: res.GameOver, Status: res.Message}

		require.NoError(t, s.Save(ctx, slug, next))
		got, err := s.Load(ctx, slug)
		require.NoError(t, err)
		assert.Empty(t, stateDiff(next, got))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, slug))
		require.NoError(t, s.Delete(ctx, slug))
		_, err := s.Load(ctx, slug)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemoryCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	state := playedState()
	require.NoError(t, s.Save(ctx, "apple", state))

	state.Status = "changed"
	got, err := s.Load(ctx, "apple")
	require.NoError(t, err)
	assert.NotEqual(t, "changed", got.Status)
}

func TestSQLite(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "games.db"), "games")
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestSQLiteBadName(t *testing.T) {
	ctx := context.Background()
	for _, name := range []string{"", "games; DROP TABLE x", "game_state", "g1"} {
		_, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "games.db"), name)
		assert.ErrorIs(t, err, ErrBadName, "name %q", name)
	}
}

func TestSQLitePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "games.db")
	state := playedState()

	s, err := OpenSQLite(ctx, path, "games")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "apple", state))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path, "games")
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(ctx, "apple")
	require.NoError(t, err)
	assert.Empty(t, stateDiff(state, got))
}

func TestPostgres(t *testing.T) {
	url, ok := os.LookupEnv("TEST_DATABASE_URL")
	if !ok || testing.Short() {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := database.ConnectAndMigrate(context.Background(), url)
	require.NoError(t, err)
	s := NewPostgres(pool)
	defer s.Close()

	testStore(t, s)
}

func TestRedis(t *testing.T) {
	addr, ok := os.LookupEnv("TEST_REDIS_ADDR")
	if !ok || testing.Short() {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	s, err := OpenRedis(context.Background(), addr, time.Minute)
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestNewSlug(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for attempt := range 20 {
		slug := NewSlug(r, attempt)
		assert.True(t, IsSlug(slug), slug)
		if attempt < plainAttempts {
			assert.Contains(t, words, slug)
		} else {
			assert.Regexp(t, `^[a-z]+-\d+$`, slug)
		}
	}
}

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("apple"))
	assert.True(t, IsSlug("apple-42"))
	assert.False(t, IsSlug(""))
	assert.False(t, IsSlug("Apple"))
	assert.False(t, IsSlug("apple/../x"))
	assert.False(t, IsSlug("a very long slug that goes on and on"))
}
