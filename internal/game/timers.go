package game

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Clock orchestration. Each clock category carries a generation
// counter bumped whenever the clock is retired; a tick whose
// generation is stale returns without any observable effect, so a
// retired clock can never broadcast or declare a timeout. Handles are
// stopped-and-awaited strictly outside the session lock, because ticks
// take that lock.

func (that *Session) retireTurnClockLocked() []*countdown {
	that.turnGen++

	if that.turnClock == nil {
		return nil
	}

	clock := that.turnClock
	that.turnClock = nil

	return []*countdown{clock}
}

func (that *Session) retirePauseClockLocked() []*countdown {
	that.pauseGen++

	if that.pauseClock == nil {
		return nil
	}

	clock := that.pauseClock
	that.pauseClock = nil

	return []*countdown{clock}
}

func (that *Session) retireClocksLocked() []*countdown {
	return append(that.retireTurnClockLocked(), that.retirePauseClockLocked()...)
}

// startTurnClock replaces the turn clock for the current mover. The
// previous instance is retired and awaited first. With both limits
// unlimited no countdown runs, but a zero-state snapshot is still
// broadcast so clients can render the timer panel.
func (that *Session) startTurnClock() {
	that.mu.Lock()
	stopped := that.retireTurnClockLocked()
	that.mu.Unlock()

	stopClocks(stopped)

	that.mu.Lock()
	if that.turnClock != nil || !that.game.Started() || that.game.IsFinished() || that.paused {
		that.mu.Unlock()
		return
	}

	that.turnRemaining = that.turnLimit
	if that.turnLimit > 0 || that.totalLimit > 0 {
		that.turnClock = startCountdown(that.turnTick(that.turnGen))
	}
	snapshot := that.timerSyncLocked()
	that.mu.Unlock()

	that.broadcast(snapshot)
}

// turnTick decrements the per-move and the mover's total budget in the
// same tick. Whichever reaches zero first times the mover out.
func (that *Session) turnTick(gen uint64) func() bool {
	return func() bool {
		that.mu.Lock()

		if gen != that.turnGen {
			that.mu.Unlock()
			return false
		}

		mover := that.game.Turn()
		if that.turnLimit > 0 && that.turnRemaining > 0 {
			that.turnRemaining--
		}
		if that.totalLimit > 0 && that.totalRemaining[mover] > 0 {
			that.totalRemaining[mover]--
		}

		expired := (that.turnLimit > 0 && that.turnRemaining <= 0) ||
			(that.totalLimit > 0 && that.totalRemaining[mover] <= 0)

		events := []any{}
		if expired {
			that.turnClock = nil
			that.turnGen++

			if winner, err := that.game.Timeout(mover); err == nil {
				message := fmt.Sprintf("%s ran out of time, %s wins", mover, winner)
				events = append(events,
					newGameOverEvent(entity.WinnerResult(winner), "timeout", message),
					that.awardWinLocked(winner),
				)
			}
		}
		snapshot := that.timerSyncLocked()
		that.mu.Unlock()

		that.broadcast(append([]any{snapshot}, events...)...)

		return !expired
	}
}

// startPauseClock runs the bounded pause countdown. Reaching zero
// resumes play by restarting the turn clock at the full limit.
func (that *Session) startPauseClock() {
	that.mu.Lock()
	if !that.paused || that.pauseClock != nil {
		that.mu.Unlock()
		return
	}

	that.pauseClock = startCountdown(that.pauseTick(that.pauseGen))
	snapshot := that.timerSyncLocked()
	that.mu.Unlock()

	that.broadcast(snapshot)
}

func (that *Session) pauseTick(gen uint64) func() bool {
	return func() bool {
		that.mu.Lock()

		if gen != that.pauseGen {
			that.mu.Unlock()
			return false
		}

		if that.pauseRemaining > 0 {
			that.pauseRemaining--
		}

		expired := that.pauseRemaining <= 0
		if expired {
			that.pauseClock = nil
			that.pauseGen++
			that.paused = false
			that.pauseInitiator = entity.ColorNone
		}
		snapshot := that.timerSyncLocked()
		that.mu.Unlock()

		if expired {
			that.broadcast(snapshot, newAdminMessageEvent("the pause is over, game on"))
			that.startTurnClock()
			return false
		}

		that.broadcast(snapshot)

		return true
	}
}

// timerSyncLocked builds the full snapshot broadcast on every tick so
// late joiners resynchronize without replaying history. Unlimited
// budgets show as -1.
func (that *Session) timerSyncLocked() timerSyncEvent {
	turnRemaining := -1
	if that.turnLimit > 0 {
		turnRemaining = that.turnRemaining
	}

	totals := map[string]int{"black": -1, "white": -1}
	if that.totalLimit > 0 {
		totals["black"] = that.totalRemaining[entity.ColorBlack]
		totals["white"] = that.totalRemaining[entity.ColorWhite]
	}

	return timerSyncEvent{
		Type:           "timer_sync",
		TurnRemaining:  turnRemaining,
		TotalRemaining: totals,
		Paused:         that.paused,
		PauseInitiator: that.pauseInitiator.String(),
		PauseRemaining: that.pauseRemaining,
		PauseCredits: map[string]int{
			"black": that.pauseCredits[entity.ColorBlack],
			"white": that.pauseCredits[entity.ColorWhite],
		},
	}
}
