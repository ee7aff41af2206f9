package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/receiptsweeper/internal/config"
	"github.com/vancomm/receiptsweeper/internal/database"
	"github.com/vancomm/receiptsweeper/internal/middleware"
	"github.com/vancomm/receiptsweeper/internal/receipt"
	"github.com/vancomm/receiptsweeper/internal/session"
	"github.com/vancomm/receiptsweeper/internal/store"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	cfg      *config.App
	log      logrus.FieldLogger
	router   *http.ServeMux
	sessions *session.Service
	cookies  *config.Cookies
	tickets  *config.JWT
	ws       *config.WebSocket
}

func New(cfg *config.App, log logrus.FieldLogger, st store.Store, tickets *config.JWT) *App {
	opts := []session.Option{session.WithTicketer(tickets)}
	if cfg.PrinterURL != "" {
		opts = append(opts, session.WithPrinter(receipt.NewHTTP(cfg.PrinterURL, nil)))
	}

	app := &App{
		cfg:      cfg,
		log:      log,
		router:   http.NewServeMux(),
		sessions: session.New(st, receipt.NewFeed(cfg.FeedSize), log, opts...),
		cookies:  config.NewCookies(),
		tickets:  tickets,
		ws:       config.NewWebSocket(cfg.Development),
	}
	app.loadRoutes()
	return app
}

// OpenStore connects the backend named by cfg.StoreDriver. Postgres is
// migrated before use.
func OpenStore(ctx context.Context, cfg *config.App) (store.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		return store.NewMemory(), nil
	case "sqlite":
		return store.OpenSQLite(ctx, cfg.SQLitePath, "games")
	case "postgres":
		url, err := config.PostgresURL()
		if err != nil {
			return nil, err
		}
		db, err := database.ConnectAndMigrate(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		return store.NewPostgres(db), nil
	case "redis":
		return store.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisTTL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Cors(),
		middleware.Logging(a.log),
	)
}

// Start serves until ctx is cancelled, then shuts the server down
// gracefully.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.cfg.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.cfg.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
