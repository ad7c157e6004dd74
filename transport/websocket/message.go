package websocket

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// envelope is the first pass over every inbound frame; the payload is
// re-decoded per type by the matching handler.
type envelope struct {
	Type string `json:"type"`
}

type movePayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type undoResponsePayload struct {
	Accepted bool `json:"accepted"`
}

type usernamePayload struct {
	Username string `json:"username"`
}

// adminPayload covers every admin message; each carries the shared
// secret plus whichever field its operation needs.
type adminPayload struct {
	Password       string       `json:"password"`
	Capacity       int          `json:"capacity"`
	Seconds        int          `json:"seconds"`
	SpectatorIndex int          `json:"spectator_index"`
	PlayerColor    entity.Color `json:"player_color"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newErrorMessage(message string) errorMessage {
	return errorMessage{Type: "error", Message: message}
}

type rejectedMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newRejectedMessage(message string) rejectedMessage {
	return rejectedMessage{Type: "rejected", Message: message}
}
