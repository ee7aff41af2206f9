package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/receiptsweeper/internal/config"
	"github.com/vancomm/receiptsweeper/internal/session"
	"github.com/vancomm/receiptsweeper/internal/store"
)

const feedWriteTimeout = 10 * time.Second

type GameHandler struct {
	log      logrus.FieldLogger
	sessions *session.Service
	cookies  *config.Cookies
	tickets  *config.JWT
	ws       *config.WebSocket
}

func NewGameHandler(
	log logrus.FieldLogger,
	sessions *session.Service,
	cookies *config.Cookies,
	tickets *config.JWT,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		cookies:  cookies,
		tickets:  tickets,
		ws:       ws,
	}
}

func (g GameHandler) slug(w http.ResponseWriter, r *http.Request) (string, bool) {
	slug := r.PathValue("slug")
	if !store.IsSlug(slug) {
		sendErrorOrLog(w, g.log, http.StatusNotFound, store.ErrNotFound)
		return "", false
	}
	return slug, true
}

// storeError answers with the status matching a failed store or session
// call.
func (g GameHandler) storeError(w http.ResponseWriter, slug string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		sendErrorOrLog(w, g.log, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	g.log.WithFields(logrus.Fields{
		"slug":  slug,
		"error": err,
	}).Error("game request failed")
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	started, err := g.sessions.Start(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to start a new game")
		return
	}

	g.cookies.SetTicket(w, started.Slug, started.Ticket, time.Now().Add(g.tickets.TokenLifetime))

	dto := NewGameDTO(started.Slug, started.Result)
	dto.Token = started.Ticket
	sendJSONOrLog(w, g.log, http.StatusCreated, dto)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	slug, ok := g.slug(w, r)
	if !ok {
		return
	}

	state, err := g.sessions.State(r.Context(), slug)
	if err != nil {
		g.storeError(w, slug, err)
		return
	}

	sendJSONOrLog(w, g.log, http.StatusOK, NewStateDTO(slug, state))
}

func (g GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	slug, ok := g.slug(w, r)
	if !ok {
		return
	}

	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	res, err := g.sessions.Act(r.Context(), slug, dto.Action, dto.Cell)
	if err != nil {
		g.storeError(w, slug, err)
		return
	}

	sendJSONOrLog(w, g.log, http.StatusOK, NewGameDTO(slug, res))
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	slug, ok := g.slug(w, r)
	if !ok {
		return
	}

	res, err := g.sessions.Reset(r.Context(), slug)
	if err != nil {
		g.storeError(w, slug, err)
		return
	}

	sendJSONOrLog(w, g.log, http.StatusOK, NewGameDTO(slug, res))
}

// Feed streams the receipts of one game over a websocket: first the stored
// history, then every new print until either side hangs up.
func (g GameHandler) Feed(w http.ResponseWriter, r *http.Request) {
	slug, ok := g.slug(w, r)
	if !ok {
		return
	}
	if _, err := g.sessions.State(r.Context(), slug); err != nil {
		g.storeError(w, slug, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("unable to upgrade connection")
		return
	}
	defer conn.Close()

	history, prints, cancel := g.sessions.Feed().Subscribe(slug)
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					g.log.WithError(err).Debug("feed read")
				}
				return
			}
		}
	}()

	for _, p := range history {
		conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := conn.WriteJSON(p); err != nil {
			g.log.WithError(err).Warn("feed write")
			return
		}
	}

	for {
		select {
		case p, ok := <-prints:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := conn.WriteJSON(p); err != nil {
				g.log.WithError(err).Warn("feed write")
				return
			}
		case <-closed:
			return
		}
	}
}
