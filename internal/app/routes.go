package app

import (
	"net/http"

	"github.com/vancomm/receiptsweeper/internal/handlers"
	"github.com/vancomm/receiptsweeper/internal/middleware"
	"github.com/vancomm/receiptsweeper/internal/receipt"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.sessions, a.cookies, a.tickets, a.ws)
	printer := handlers.NewPrinterHandler(a.log)
	ticket := middleware.RequireTicket(a.log, a.cookies, a.tickets)

	a.router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{slug}", game.Fetch)
	a.router.Handle("POST /game/{slug}/move", middleware.Wrap(http.HandlerFunc(game.Move), ticket))
	a.router.Handle("POST /game/{slug}/reset", middleware.Wrap(http.HandlerFunc(game.Reset), ticket))
	a.router.HandleFunc("GET /game/{slug}/feed", game.Feed)

	a.router.HandleFunc("POST "+receipt.DefaultEndpoint, printer.Print)
}
