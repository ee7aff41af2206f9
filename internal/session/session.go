// Package session runs games on behalf of remote players: it loads a game by
// slug, applies one action, persists the outcome and prints a receipt.
package session

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/receiptsweeper/internal/mines"
	"github.com/vancomm/receiptsweeper/internal/receipt"
	"github.com/vancomm/receiptsweeper/internal/store"
)

const (
	BadCellMessage = "Enter a cell like A3 or 5B."

	maxSlugAttempts = 32
)

var ErrNoFreeSlug = errors.New("unable to find a free slug")

// Ticketer issues the token a player needs to act on a game.
type Ticketer interface {
	Sign(slug string) (string, error)
}

type Started struct {
	Slug   string
	Ticket string
	mines.Result
}

type Service struct {
	store    store.Store
	feed     *receipt.Feed
	printer  receipt.Printer
	ticketer Ticketer
	log      logrus.FieldLogger
	now      func() time.Time

	rndMu sync.Mutex
	rnd   *rand.Rand

	locksMu sync.Mutex
	locks   map[string]*slugLock
}

type Option func(*Service)

// WithPrinter adds a printer that receives every receipt after the feed.
func WithPrinter(p receipt.Printer) Option {
	return func(s *Service) { s.printer = receipt.Multi{s.feed, p} }
}

func WithTicketer(t Ticketer) Option {
	return func(s *Service) { s.ticketer = t }
}

func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rnd = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(st store.Store, feed *receipt.Feed, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		store:   st,
		feed:    feed,
		printer: feed,
		log:     log,
		now:     time.Now,
		rnd: rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		)),
		locks: make(map[string]*slugLock),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Feed() *receipt.Feed {
	return s.feed
}

// newGame seeds a game from the service source so that games never share a
// generator across goroutines.
func (s *Service) newGame() *mines.Game {
	s.rndMu.Lock()
	seed1, seed2 := s.rnd.Uint64(), s.rnd.Uint64()
	s.rndMu.Unlock()
	return mines.NewGame(rand.New(rand.NewPCG(seed1, seed2)))
}

func (s *Service) newSlug(attempt int) string {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return store.NewSlug(s.rnd, attempt)
}

func (s *Service) print(ctx context.Context, slug string, action mines.Action, at mines.Point, res mines.Result) {
	p := receipt.New(slug, action, at, res.Board, res.Message, s.now())
	if err := s.printer.Print(ctx, p); err != nil {
		s.log.WithFields(logrus.Fields{
			"slug":  slug,
			"error": err,
		}).Warn("unable to print receipt")
	}
}

// Start creates a game under a fresh slug and prints its opening receipt.
func (s *Service) Start(ctx context.Context) (Started, error) {
	game := s.newGame()
	res := mines.Result{Board: game.Board(), Message: mines.StartMessage}
	state := store.State{Board: res.Board, Status: res.Message}

	var slug string
	for attempt := range maxSlugAttempts {
		candidate := s.newSlug(attempt)
		err := s.store.Create(ctx, candidate, state)
		if errors.Is(err, store.ErrSlugTaken) {
			s.log.WithField("slug", candidate).Debug("slug taken, retrying")
			continue
		}
		if err != nil {
			return Started{}, fmt.Errorf("unable to create game: %w", err)
		}
		slug = candidate
		break
	}
	if slug == "" {
		return Started{}, ErrNoFreeSlug
	}

	started := Started{Slug: slug, Result: res}
	if s.ticketer != nil {
		ticket, err := s.ticketer.Sign(slug)
		if err != nil {
			return Started{}, fmt.Errorf("unable to sign ticket: %w", err)
		}
		started.Ticket = ticket
	}

	s.log.WithField("slug", slug).Info("game started")
	s.print(ctx, slug, mines.Test, mines.Point{}, res)
	return started, nil
}

// Reset replaces the game stored under slug with a new one and clears its
// receipt history.
func (s *Service) Reset(ctx context.Context, slug string) (mines.Result, error) {
	unlock := s.lock(slug)
	defer unlock()

	if _, err := s.store.Load(ctx, slug); err != nil {
		return mines.Result{}, err
	}

	game := s.newGame()
	res := mines.Result{Board: game.Board(), Message: mines.StartMessage}
	if err := s.store.Save(ctx, slug, store.State{Board: res.Board, Status: res.Message}); err != nil {
		return mines.Result{}, fmt.Errorf("unable to save game: %w", err)
	}

	s.feed.Clear(slug)
	s.print(ctx, slug, mines.Test, mines.Point{}, res)
	return res, nil
}

// Act applies action to the cell named by cell, e.g. "A3" or "5b". A
// malformed cell is reported in the result message and prints nothing.
func (s *Service) Act(ctx context.Context, slug string, action mines.Action, cell string) (mines.Result, error) {
	unlock := s.lock(slug)
	defer unlock()

	state, err := s.store.Load(ctx, slug)
	if err != nil {
		return mines.Result{}, err
	}

	p, err := mines.ParsePoint(cell)
	if err != nil {
		state.Status = BadCellMessage
		if err := s.store.Save(ctx, slug, state); err != nil {
			return mines.Result{}, fmt.Errorf("unable to save game: %w", err)
		}
		return mines.Result{Board: state.Board, GameOver: state.GameOver, Message: BadCellMessage}, nil
	}

	game := mines.Restore(state.Board, state.GameOver)
	res := game.Apply(action, p)

	err = s.store.Save(ctx, slug, store.State{Board: res.Board, GameOver: res.GameOver, Status: res.Message})
	if err != nil {
		return mines.Result{}, fmt.Errorf("unable to save game: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"slug":   slug,
		"action": action,
		"cell":   p.Label(),
		"over":   res.GameOver,
	}).Debug("action applied")
	s.print(ctx, slug, action, p, res)
	return res, nil
}

func (s *Service) State(ctx context.Context, slug string) (store.State, error) {
	return s.store.Load(ctx, slug)
}
