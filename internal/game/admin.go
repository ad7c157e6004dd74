package game

import (
	"crypto/subtle"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Admin operations. Every call carries the shared secret; there is no
// session-scoped elevation. Operations that touch slot occupancy or
// the board force a full reset plus a role resync to every connection,
// so clients' self-perceived role stays correct.

func (that *Session) checkPassword(password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(that.adminPassword)) != 1 {
		return apperror.ErrWrongPassword
	}

	return nil
}

// AdminSwapColors rotates the two player slots and restarts the match.
func (that *Session) AdminSwapColors(password string) error {
	if err := that.checkPassword(password); err != nil {
		return err
	}

	that.mu.Lock()
	black, white := that.players[entity.ColorBlack], that.players[entity.ColorWhite]
	delete(that.players, entity.ColorBlack)
	delete(that.players, entity.ColorWhite)

	if black != nil {
		black.color = entity.ColorWhite
		that.players[entity.ColorWhite] = black
	}
	if white != nil {
		white.color = entity.ColorBlack
		that.players[entity.ColorBlack] = white
	}

	notice := newAdminMessageEvent("an admin swapped the player colors")
	that.forceResetLocked(notice)

	return nil
}

// AdminUndo rewinds the last move without asking anyone.
func (that *Session) AdminUndo(password string) error {
	if err := that.checkPassword(password); err != nil {
		return err
	}

	that.mu.Lock()

	if _, err := that.game.UndoLastMove(); err != nil {
		that.mu.Unlock()
		return err
	}

	that.pendingUndo = entity.ColorNone
	events := []any{
		newSyncStateEvent(that.game.Snapshot()),
		newAdminMessageEvent("an admin rewound the last move"),
	}
	that.mu.Unlock()

	that.broadcast(events...)
	that.startTurnClock()

	return nil
}

// AdminChangeCapacity adjusts the admission limit, clamped to at least
// the two player slots. Connections already admitted are kept.
func (that *Session) AdminChangeCapacity(password string, capacity int) error {
	if err := that.checkPassword(password); err != nil {
		return err
	}

	if capacity < minCapacity {
		capacity = minCapacity
	}

	that.mu.Lock()
	that.capacity = capacity
	players, spectators := that.onlineLocked()
	events := []any{
		newRoomInfoEvent(that.capacity, players+spectators),
		newAdminMessageEvent("room capacity is now %d", capacity),
	}
	that.mu.Unlock()

	that.broadcast(events...)

	return nil
}

// AdminChangeTimer sets the per-move limit; zero disables it. The turn
// clock restarts immediately under the new limit.
func (that *Session) AdminChangeTimer(password string, seconds int) error {
	if err := that.checkPassword(password); err != nil {
		return err
	}

	that.mu.Lock()
	that.turnLimit = clampSeconds(seconds)
	events := that.timerSettingEventsLocked("per-move time")
	that.mu.Unlock()

	that.broadcast(events...)
	that.startTurnClock()

	return nil
}

// AdminChangeTotalTime sets the per-color match budget; zero disables
// it. Both colors' remaining budgets restart at the new value.
func (that *Session) AdminChangeTotalTime(password string, seconds int) error {
	if err := that.checkPassword(password); err != nil {
		return err
	}

	that.mu.Lock()
	that.totalLimit = clampSeconds(seconds)
	that.totalRemaining[entity.ColorBlack] = that.totalLimit
	that.totalRemaining[entity.ColorWhite] = that.totalLimit
	events := that.timerSettingEventsLocked("total time")
	that.mu.Unlock()

	that.broadcast(events...)
	that.startTurnClock()

	return nil
}

// AdminChangePauseDuration sets how long a pause lasts. An already
// running pause countdown keeps its old deadline.
func (that *Session) AdminChangePauseDuration(password string, seconds int) error {
	if err := that.checkPassword(password); err != nil {
		return err
	}

	that.mu.Lock()
	that.pauseLimit = clampSeconds(seconds)
	events := that.timerSettingEventsLocked("pause duration")
	that.mu.Unlock()

	that.broadcast(events...)

	return nil
}

func (that *Session) timerSettingEventsLocked(what string) []any {
	return []any{
		newTimerSettingEvent(that.turnLimit, that.totalLimit, that.pauseLimit),
		newAdminMessageEvent("an admin changed the %s setting", what),
	}
}

// AdminClearScores wipes the whole score registry.
func (that *Session) AdminClearScores(password string) error {
	if err := that.checkPassword(password); err != nil {
		return err
	}

	that.mu.Lock()
	that.scores.Clear()
	board := that.scoreboardLocked()
	that.mu.Unlock()

	that.broadcast(board, newAdminMessageEvent("an admin cleared the scoreboard"))

	return nil
}

// AdminSwapSpectator promotes the spectator at the given index into a
// player slot; a previous occupant becomes a spectator in their place.
func (that *Session) AdminSwapSpectator(password string, index int, color entity.Color) error {
	if err := that.checkPassword(password); err != nil {
		return err
	}

	if color != entity.ColorBlack && color != entity.ColorWhite {
		return apperror.ErrOutOfBounds
	}

	that.mu.Lock()

	if index < 0 || index >= len(that.spectators) {
		that.mu.Unlock()
		return apperror.ErrNoSuchSpectator
	}

	promoted := that.spectators[index]
	demoted := that.players[color]

	promoted.color = color
	that.players[color] = promoted

	if demoted != nil {
		demoted.color = entity.ColorNone
		that.spectators[index] = demoted
	} else {
		that.spectators = append(that.spectators[:index], that.spectators[index+1:]...)
	}

	notice := newAdminMessageEvent("an admin moved a spectator into the %s slot", color)
	that.forceResetLocked(notice)

	return nil
}

// forceResetLocked finishes an admin mutation of roles or board state:
// full reset, role resync to every connection, state rebroadcast and a
// timer restart identical to a manual reset. The lock is released
// inside.
func (that *Session) forceResetLocked(notice adminMessageEvent) {
	stopped := that.resetMatchLocked()

	type targeted struct {
		client *Client
		event  roleAssignedEvent
	}

	resync := make([]targeted, 0, len(that.spectators)+2)
	for _, color := range []entity.Color{entity.ColorBlack, entity.ColorWhite} {
		if client := that.players[color]; client != nil {
			resync = append(resync, targeted{client, newRoleAssignedEvent(client.Role())})
		}
	}
	for _, spectator := range that.spectators {
		resync = append(resync, targeted{spectator, newRoleAssignedEvent(RoleSpectator)})
	}

	events := []any{
		notice,
		newResetEvent(that.game.Started()),
		newSyncStateEvent(that.game.Snapshot()),
		that.playerInfoLocked(),
	}
	that.mu.Unlock()

	stopClocks(stopped)

	for _, target := range resync {
		that.send(target.client, target.event)
	}

	that.broadcast(events...)
	that.startTurnClock()
}
