package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGamePaused       = errors.New("game is paused")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrOutOfBounds      = errors.New("position is outside the board")

	ErrNotAPlayer  = errors.New("spectators cannot do that")
	ErrRoomFull    = errors.New("room is full")
	ErrUnknownType = errors.New("unknown message type")

	ErrUndoPending    = errors.New("an undo request is already pending")
	ErrNoUndoPending  = errors.New("no undo request is pending")
	ErrNothingToUndo  = errors.New("no moves to undo")
	ErrWrongResponder = errors.New("only the opponent can answer an undo request")

	ErrAlreadyPaused  = errors.New("game is already paused")
	ErrNotPaused      = errors.New("game is not paused")
	ErrNoPauseCredits = errors.New("no pause credits left")

	ErrWrongPassword   = errors.New("wrong admin password")
	ErrNoSuchSpectator = errors.New("no such spectator")
)
