package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket accepts any origin in development and only same-origin
// upgrades otherwise.
func NewWebSocket(development bool) *WebSocket {
	upgrader := websocket.Upgrader{}
	if development {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
	return &WebSocket{Upgrader: upgrader}
}
