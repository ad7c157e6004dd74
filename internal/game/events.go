package game

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Outbound protocol events. Every state-changing operation returns a
// fixed sequence of these; one fan-out path turns them into frames.

type roleAssignedEvent struct {
	Type    string       `json:"type"`
	Role    Role         `json:"role"`
	Color   entity.Color `json:"color"`
	Message string       `json:"message"`
}

func newRoleAssignedEvent(role Role) roleAssignedEvent {
	var color entity.Color
	var message string

	switch role {
	case RoleBlack:
		color = entity.ColorBlack
		message = "you play black (first move)"
	case RoleWhite:
		color = entity.ColorWhite
		message = "you play white"
	default:
		message = "you are spectating"
	}

	return roleAssignedEvent{Type: "role_assigned", Role: role, Color: color, Message: message}
}

type syncStateEvent struct {
	Type string `json:"type"`
	entity.State
}

func newSyncStateEvent(state entity.State) syncStateEvent {
	return syncStateEvent{Type: "sync_state", State: state}
}

type onlineCountEvent struct {
	Type       string `json:"type"`
	Players    int    `json:"players"`
	Spectators int    `json:"spectators"`
}

func newOnlineCountEvent(players, spectators int) onlineCountEvent {
	return onlineCountEvent{Type: "online_count", Players: players, Spectators: spectators}
}

type scoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type scoreboardEvent struct {
	Type   string       `json:"type"`
	Scores []scoreEntry `json:"scores"`
}

func newScoreboardEvent(entries []scoreEntry) scoreboardEvent {
	return scoreboardEvent{Type: "scoreboard", Scores: entries}
}

type roomInfoEvent struct {
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Online   int    `json:"online"`
}

func newRoomInfoEvent(capacity, online int) roomInfoEvent {
	return roomInfoEvent{Type: "room_info", Capacity: capacity, Online: online}
}

type timerSettingEvent struct {
	Type         string `json:"type"`
	TurnSeconds  int    `json:"turn_seconds"`
	TotalSeconds int    `json:"total_seconds"`
	PauseSeconds int    `json:"pause_seconds"`
}

func newTimerSettingEvent(turn, total, pause int) timerSettingEvent {
	return timerSettingEvent{Type: "timer_setting", TurnSeconds: turn, TotalSeconds: total, PauseSeconds: pause}
}

type timerSyncEvent struct {
	Type           string         `json:"type"`
	TurnRemaining  int            `json:"turn_remaining"`
	TotalRemaining map[string]int `json:"total_remaining"`
	Paused         bool           `json:"paused"`
	PauseInitiator string         `json:"pause_initiator"`
	PauseRemaining int            `json:"pause_remaining"`
	PauseCredits   map[string]int `json:"pause_credits"`
}

type moveEvent struct {
	Type        string        `json:"type"`
	Row         int           `json:"row"`
	Col         int           `json:"col"`
	Color       entity.Color  `json:"color"`
	CurrentTurn entity.Color  `json:"current_turn"`
	Winner      entity.Result `json:"winner"`
	Message     string        `json:"message"`
}

func newMoveEvent(move entity.Move, turn entity.Color, result entity.Result) moveEvent {
	var message string

	switch result {
	case entity.ResultBlackWin, entity.ResultWhiteWin:
		message = fmt.Sprintf("%s wins!", move.Color)
	case entity.ResultDraw:
		message = "it's a draw"
	}

	return moveEvent{
		Type:        "move",
		Row:         move.Row,
		Col:         move.Col,
		Color:       move.Color,
		CurrentTurn: turn,
		Winner:      result,
		Message:     message,
	}
}

type gameOverEvent struct {
	Type    string        `json:"type"`
	Winner  entity.Result `json:"winner"`
	Reason  string        `json:"reason"`
	Message string        `json:"message"`
}

func newGameOverEvent(result entity.Result, reason, message string) gameOverEvent {
	return gameOverEvent{Type: "game_over", Winner: result, Reason: reason, Message: message}
}

type playerLeftEvent struct {
	Type    string       `json:"type"`
	Color   entity.Color `json:"color"`
	Message string       `json:"message"`
}

func newPlayerLeftEvent(color entity.Color) playerLeftEvent {
	return playerLeftEvent{
		Type:    "player_left",
		Color:   color,
		Message: fmt.Sprintf("%s disconnected, waiting for a new player", color),
	}
}

type gameStartEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newGameStartEvent() gameStartEvent {
	return gameStartEvent{Type: "game_start", Message: "both players are in, black moves first"}
}

type resetEvent struct {
	Type        string `json:"type"`
	GameStarted bool   `json:"game_started"`
	Message     string `json:"message"`
}

func newResetEvent(started bool) resetEvent {
	return resetEvent{Type: "reset", GameStarted: started, Message: "the board has been reset"}
}

type playerInfoEvent struct {
	Type       string   `json:"type"`
	Black      string   `json:"black"`
	White      string   `json:"white"`
	Spectators []string `json:"spectators"`
}

type undoRequestEvent struct {
	Type    string       `json:"type"`
	From    entity.Color `json:"from"`
	Message string       `json:"message"`
}

func newUndoRequestEvent(from entity.Color) undoRequestEvent {
	return undoRequestEvent{
		Type:    "undo_request",
		From:    from,
		Message: fmt.Sprintf("%s asks to undo the last move", from),
	}
}

type adminMessageEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newAdminMessageEvent(format string, args ...any) adminMessageEvent {
	return adminMessageEvent{Type: "admin_message", Message: fmt.Sprintf(format, args...)}
}
