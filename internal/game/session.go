package game

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	minCapacity       = 2
	maxUsernameLength = 24
)

var ErrInvalidUsername = errors.New("invalid username")

type Role string

const (
	RoleBlack     Role = "black"
	RoleWhite     Role = "white"
	RoleSpectator Role = "spectator"
)

// Conn is the transport side of a connection. WriteEvent may block on
// the network, so the session never calls it while holding its lock.
type Conn interface {
	WriteEvent(v any) error
	Close() error
}

// Client is the stable identity allocated at admission. Role and score
// lookups go through it instead of comparing transport handles.
type Client struct {
	id    string
	name  string
	color entity.Color // ColorNone for spectators
	conn  Conn
}

func (that *Client) ID() string { return that.id }

func (that *Client) Name() string { return that.name }

func (that *Client) Color() entity.Color { return that.color }

func (that *Client) Role() Role {
	switch that.color {
	case entity.ColorBlack:
		return RoleBlack
	case entity.ColorWhite:
		return RoleWhite
	default:
		return RoleSpectator
	}
}

func (that *Client) IsPlayer() bool { return that.color != entity.ColorNone }

type Settings struct {
	AdminPassword string
	Capacity      int
	TurnSeconds   int
	TotalSeconds  int
	PauseSeconds  int
	PauseCredits  int
}

// Session is the single shared match: board, roster, timers, scores
// and the undo negotiation. It is constructed once at server start and
// handed to the transport layer.
type Session struct {
	logger *slog.Logger

	mu         sync.Mutex
	game       *entity.Game
	players    map[entity.Color]*Client
	spectators []*Client
	scores     *Scoreboard

	adminPassword string
	capacity      int
	turnLimit     int // seconds per move, 0 = unlimited
	totalLimit    int // seconds per color for the whole match, 0 = unlimited
	pauseLimit    int // seconds one pause lasts
	creditLimit   int // pauses each color may take per game

	turnClock     *countdown
	turnGen       uint64
	turnRemaining int

	pauseClock     *countdown
	pauseGen       uint64
	paused         bool
	pauseInitiator entity.Color
	pauseRemaining int

	totalRemaining map[entity.Color]int
	pauseCredits   map[entity.Color]int

	pendingUndo entity.Color // ColorNone when no request is outstanding
}

func NewSession(logger *slog.Logger, settings Settings) *Session {
	capacity := settings.Capacity
	if capacity < minCapacity {
		capacity = minCapacity
	}

	that := &Session{
		logger:        logger.With("component", "session"),
		game:          entity.NewGame(),
		players:       make(map[entity.Color]*Client, 2),
		scores:        NewScoreboard(),
		adminPassword: settings.AdminPassword,
		capacity:      capacity,
		turnLimit:     clampSeconds(settings.TurnSeconds),
		totalLimit:    clampSeconds(settings.TotalSeconds),
		pauseLimit:    clampSeconds(settings.PauseSeconds),
		creditLimit:   settings.PauseCredits,
	}

	that.totalRemaining = map[entity.Color]int{
		entity.ColorBlack: that.totalLimit,
		entity.ColorWhite: that.totalLimit,
	}
	that.pauseCredits = map[entity.Color]int{
		entity.ColorBlack: that.creditLimit,
		entity.ColorWhite: that.creditLimit,
	}
	that.turnRemaining = that.turnLimit

	return that
}

// negative settings mean the same as zero: unlimited / disabled.
func clampSeconds(seconds int) int {
	if seconds < 0 {
		return 0
	}

	return seconds
}

// Admit assigns a role to a new connection: first vacancy black, then
// white, everyone else spectates, up to the room capacity.
func (that *Session) Admit(conn Conn) (*Client, error) {
	log := that.logger.With("method", "Admit")

	that.mu.Lock()

	players, spectators := that.onlineLocked()
	if players+spectators >= that.capacity {
		that.mu.Unlock()
		return nil, apperror.ErrRoomFull
	}

	client := &Client{id: uuid.NewString(), conn: conn}

	justStarted := false
	switch {
	case that.players[entity.ColorBlack] == nil:
		client.color = entity.ColorBlack
		that.players[entity.ColorBlack] = client
	case that.players[entity.ColorWhite] == nil:
		client.color = entity.ColorWhite
		that.players[entity.ColorWhite] = client
	default:
		that.spectators = append(that.spectators, client)
	}

	if client.IsPlayer() && that.players[client.color.Opponent()] != nil {
		that.game.SetStarted(true)
		justStarted = true
	}

	burst := that.welcomeBurstLocked(client)
	players, spectators = that.onlineLocked()
	online := newOnlineCountEvent(players, spectators)
	info := that.playerInfoLocked()
	that.mu.Unlock()

	log.Info("client admitted", "id", client.id, "role", client.Role())

	that.send(client, burst...)

	if justStarted {
		that.broadcast(newGameStartEvent(), online, info)
		that.startTurnClock()
		return client, nil
	}

	that.broadcast(online, info)

	return client, nil
}

// welcomeBurstLocked is the fixed resync sequence a new or reconnecting
// connection needs to render the whole match.
func (that *Session) welcomeBurstLocked(client *Client) []any {
	players, spectators := that.onlineLocked()

	return []any{
		newRoleAssignedEvent(client.Role()),
		newSyncStateEvent(that.game.Snapshot()),
		newOnlineCountEvent(players, spectators),
		that.scoreboardLocked(),
		newRoomInfoEvent(that.capacity, players+spectators),
		newTimerSettingEvent(that.turnLimit, that.totalLimit, that.pauseLimit),
		that.timerSyncLocked(),
		that.playerInfoLocked(),
	}
}

// Release removes a connection from the roster. Losing a player slot
// suspends the match: clocks stop, a pending pause or undo request is
// dropped and the started flag clears until the slot refills.
func (that *Session) Release(client *Client) {
	log := that.logger.With("method", "Release")

	that.mu.Lock()

	vacated := entity.ColorNone
	found := false

	if client.IsPlayer() && that.players[client.color] == client {
		delete(that.players, client.color)
		vacated = client.color
		found = true

		that.game.SetStarted(false)
		that.pendingUndo = entity.ColorNone
		that.paused = false
		that.pauseInitiator = entity.ColorNone
		that.pauseRemaining = 0
	} else {
		for i, spectator := range that.spectators {
			if spectator == client {
				that.spectators = append(that.spectators[:i], that.spectators[i+1:]...)
				found = true
				break
			}
		}
	}

	if !found {
		that.mu.Unlock()
		return
	}

	var stopped []*countdown
	if vacated != entity.ColorNone {
		stopped = that.retireClocksLocked()
	}

	players, spectators := that.onlineLocked()
	online := newOnlineCountEvent(players, spectators)
	info := that.playerInfoLocked()
	that.mu.Unlock()

	stopClocks(stopped)

	log.Info("client released", "id", client.id, "role", client.Role())

	if vacated != entity.ColorNone {
		that.broadcast(newPlayerLeftEvent(vacated), online, info)
		return
	}

	that.broadcast(online, info)
}

// HandleMove applies one stone for the sender. Rejections go back to
// the caller only; an accepted move is broadcast, implicitly cancels a
// pending undo request and restarts the turn clock.
func (that *Session) HandleMove(client *Client, row, col int) error {
	that.mu.Lock()

	if !client.IsPlayer() {
		that.mu.Unlock()
		return apperror.ErrNotAPlayer
	}

	if !that.game.Started() {
		that.mu.Unlock()
		return apperror.ErrGameIsNotStarted
	}

	if that.paused {
		that.mu.Unlock()
		return apperror.ErrGamePaused
	}

	if err := that.game.PlaceStone(row, col, client.color); err != nil {
		that.mu.Unlock()
		return err
	}

	that.pendingUndo = entity.ColorNone

	move := entity.Move{Row: row, Col: col, Color: client.color}
	result := that.game.Result()
	events := []any{newMoveEvent(move, that.game.Turn(), result)}

	finished := that.game.IsFinished()
	var stopped []*countdown
	if finished {
		stopped = that.retireClocksLocked()
		if result == entity.ResultDraw {
			events = append(events, newGameOverEvent(result, "draw", "the board is full, it's a draw"))
			events = append(events, that.scoreboardLocked())
		} else {
			events = append(events, newGameOverEvent(result, "five_in_a_row", client.color.String()+" wins"))
			events = append(events, that.awardWinLocked(client.color))
		}
		events = append(events, that.timerSyncLocked())
	}
	that.mu.Unlock()

	stopClocks(stopped)
	that.broadcast(events...)

	if !finished {
		that.startTurnClock()
	}

	return nil
}

// HandleReset starts a fresh game on request of either player.
func (that *Session) HandleReset(client *Client) error {
	that.mu.Lock()

	if !client.IsPlayer() {
		that.mu.Unlock()
		return apperror.ErrNotAPlayer
	}

	stopped := that.resetMatchLocked()
	events := []any{
		newResetEvent(that.game.Started()),
		newSyncStateEvent(that.game.Snapshot()),
	}
	that.mu.Unlock()

	stopClocks(stopped)
	that.broadcast(events...)
	that.startTurnClock()

	return nil
}

// HandleResign ends the game in the opponent's favor.
func (that *Session) HandleResign(client *Client) error {
	that.mu.Lock()

	if !client.IsPlayer() {
		that.mu.Unlock()
		return apperror.ErrNotAPlayer
	}

	if !that.game.Started() {
		that.mu.Unlock()
		return apperror.ErrGameIsNotStarted
	}

	winner, err := that.game.Resign(client.color)
	if err != nil {
		that.mu.Unlock()
		return err
	}

	that.pendingUndo = entity.ColorNone
	that.paused = false
	that.pauseInitiator = entity.ColorNone
	stopped := that.retireClocksLocked()

	events := []any{
		newGameOverEvent(entity.WinnerResult(winner), "resign", client.color.String()+" resigned, "+winner.String()+" wins"),
		that.awardWinLocked(winner),
		that.timerSyncLocked(),
	}
	that.mu.Unlock()

	stopClocks(stopped)
	that.broadcast(events...)

	return nil
}

// HandleUndoRequest opens the two-phase undo negotiation: the opponent
// gets a targeted request and the clocks stay suspended until they
// answer, a new move lands or the game resets.
func (that *Session) HandleUndoRequest(client *Client) error {
	that.mu.Lock()

	if !client.IsPlayer() {
		that.mu.Unlock()
		return apperror.ErrNotAPlayer
	}

	if !that.game.Started() {
		that.mu.Unlock()
		return apperror.ErrGameIsNotStarted
	}

	if that.game.IsFinished() {
		that.mu.Unlock()
		return apperror.ErrGameFinished
	}

	if that.paused {
		that.mu.Unlock()
		return apperror.ErrGamePaused
	}

	if that.pendingUndo != entity.ColorNone {
		that.mu.Unlock()
		return apperror.ErrUndoPending
	}

	if that.game.Board().MoveCount() == 0 {
		that.mu.Unlock()
		return apperror.ErrNothingToUndo
	}

	that.pendingUndo = client.color
	opponent := that.players[client.color.Opponent()]
	stopped := that.retireTurnClockLocked()
	that.mu.Unlock()

	stopClocks(stopped)
	that.send(opponent, newUndoRequestEvent(client.color))

	return nil
}

// HandleUndoResponse closes the negotiation. Only the opponent of the
// requesting color may answer; anyone else is rejected.
func (that *Session) HandleUndoResponse(client *Client, accepted bool) error {
	that.mu.Lock()

	if !client.IsPlayer() {
		that.mu.Unlock()
		return apperror.ErrNotAPlayer
	}

	if that.pendingUndo == entity.ColorNone {
		that.mu.Unlock()
		return apperror.ErrNoUndoPending
	}

	if client.color != that.pendingUndo.Opponent() {
		that.mu.Unlock()
		return apperror.ErrWrongResponder
	}

	requester := that.pendingUndo
	that.pendingUndo = entity.ColorNone

	var events []any
	if accepted {
		if _, err := that.game.UndoLastMove(); err != nil {
			that.mu.Unlock()
			return err
		}
		events = []any{
			newSyncStateEvent(that.game.Snapshot()),
			newAdminMessageEvent("%s accepted the undo request", client.color),
		}
	} else {
		events = []any{
			newAdminMessageEvent("%s rejected %s's undo request", client.color, requester),
		}
	}
	that.mu.Unlock()

	that.broadcast(events...)
	that.startTurnClock()

	return nil
}

// HandlePause suspends the match. The turn clock is cancelled and a
// bounded pause countdown takes its place; reaching zero auto-resumes.
func (that *Session) HandlePause(client *Client) error {
	that.mu.Lock()

	if !client.IsPlayer() {
		that.mu.Unlock()
		return apperror.ErrNotAPlayer
	}

	if !that.game.Started() {
		that.mu.Unlock()
		return apperror.ErrGameIsNotStarted
	}

	if that.game.IsFinished() {
		that.mu.Unlock()
		return apperror.ErrGameFinished
	}

	if that.paused {
		that.mu.Unlock()
		return apperror.ErrAlreadyPaused
	}

	if that.pendingUndo != entity.ColorNone {
		that.mu.Unlock()
		return apperror.ErrUndoPending
	}

	if that.pauseCredits[client.color] <= 0 {
		that.mu.Unlock()
		return apperror.ErrNoPauseCredits
	}

	that.pauseCredits[client.color]--
	that.paused = true
	that.pauseInitiator = client.color
	that.pauseRemaining = that.pauseLimit
	stopped := that.retireTurnClockLocked()
	notice := newAdminMessageEvent("%s paused the game", client.color)
	that.mu.Unlock()

	stopClocks(stopped)
	that.broadcast(notice)
	that.startPauseClock()

	return nil
}

// HandleUnpause resumes play early. Either player may resume; the turn
// clock restarts at the full per-move limit.
func (that *Session) HandleUnpause(client *Client) error {
	that.mu.Lock()

	if !client.IsPlayer() {
		that.mu.Unlock()
		return apperror.ErrNotAPlayer
	}

	if !that.paused {
		that.mu.Unlock()
		return apperror.ErrNotPaused
	}

	that.paused = false
	that.pauseInitiator = entity.ColorNone
	that.pauseRemaining = 0
	stopped := that.retirePauseClockLocked()
	notice := newAdminMessageEvent("%s resumed the game", client.color)
	that.mu.Unlock()

	stopClocks(stopped)
	that.broadcast(notice)
	that.startTurnClock()

	return nil
}

// SetUsername binds a display name to the connection. Scores key on
// the name, so the same name across reconnects shares one bucket.
func (that *Session) SetUsername(client *Client, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxUsernameLength {
		return ErrInvalidUsername
	}

	that.mu.Lock()
	client.name = name
	that.scores.Touch(name)
	info := that.playerInfoLocked()
	board := that.scoreboardLocked()
	that.mu.Unlock()

	that.broadcast(info, board)

	return nil
}

// resetMatchLocked reinitializes the board and all timer state. The
// started flag follows slot occupancy.
func (that *Session) resetMatchLocked() []*countdown {
	stopped := that.retireClocksLocked()

	that.pendingUndo = entity.ColorNone
	that.paused = false
	that.pauseInitiator = entity.ColorNone
	that.pauseRemaining = 0

	that.game.Reset()
	that.game.SetStarted(that.players[entity.ColorBlack] != nil && that.players[entity.ColorWhite] != nil)

	that.turnRemaining = that.turnLimit
	that.totalRemaining[entity.ColorBlack] = that.totalLimit
	that.totalRemaining[entity.ColorWhite] = that.totalLimit
	that.pauseCredits[entity.ColorBlack] = that.creditLimit
	that.pauseCredits[entity.ColorWhite] = that.creditLimit

	return stopped
}

func (that *Session) awardWinLocked(winner entity.Color) scoreboardEvent {
	if client := that.players[winner]; client != nil && client.name != "" {
		that.scores.AddWin(client.name)
	}

	return that.scoreboardLocked()
}

func (that *Session) scoreboardLocked() scoreboardEvent {
	return newScoreboardEvent(that.scores.Entries())
}

func (that *Session) onlineLocked() (players, spectators int) {
	return len(that.players), len(that.spectators)
}

func (that *Session) playerInfoLocked() playerInfoEvent {
	info := playerInfoEvent{Type: "player_info", Spectators: make([]string, 0, len(that.spectators))}

	if black := that.players[entity.ColorBlack]; black != nil {
		info.Black = black.name
	}
	if white := that.players[entity.ColorWhite]; white != nil {
		info.White = white.name
	}
	for _, spectator := range that.spectators {
		info.Spectators = append(info.Spectators, spectator.name)
	}

	return info
}
