package entity

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// Result follows the wire protocol: 0 in progress, 1 black won,
// 2 white won, -1 draw.
type Result int8

const (
	ResultInProgress Result = 0
	ResultBlackWin   Result = 1
	ResultWhiteWin   Result = 2
	ResultDraw       Result = -1
)

func WinnerResult(color Color) Result {
	if color == ColorWhite {
		return ResultWhiteWin
	}

	return ResultBlackWin
}

// Game is the match state machine on top of the board: turn ownership,
// result and the started flag. Once the result leaves ResultInProgress
// every transition except an explicit reset or undo is rejected.
type Game struct {
	board   *Board
	turn    Color
	result  Result
	started bool
}

func NewGame() *Game {
	return &Game{
		board: NewBoard(),
		turn:  ColorBlack,
	}
}

// Reset re-initializes the board, turn and result. The started flag is
// owned by the roster and left untouched.
func (that *Game) Reset() {
	that.board = NewBoard()
	that.turn = ColorBlack
	that.result = ResultInProgress
}

func (that *Game) Board() *Board { return that.board }

func (that *Game) Turn() Color { return that.turn }

func (that *Game) Result() Result { return that.result }

func (that *Game) Started() bool { return that.started }

func (that *Game) SetStarted(started bool) { that.started = started }

func (that *Game) IsFinished() bool {
	return that.result != ResultInProgress
}

// PlaceStone applies one move. The turn alternates unless the move
// ended the game.
func (that *Game) PlaceStone(row, col int, color Color) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if color != that.turn {
		return apperror.ErrNotYourTurn
	}

	won, err := that.board.Place(row, col, color)
	if err != nil {
		return err
	}

	switch {
	case won:
		that.result = WinnerResult(color)
	case that.board.IsFull():
		that.result = ResultDraw
	default:
		that.turn = color.Opponent()
	}

	return nil
}

// Resign ends the game in the opponent's favor.
func (that *Game) Resign(color Color) (Color, error) {
	return that.forfeit(color)
}

// Timeout is the same transition as Resign, reported differently.
func (that *Game) Timeout(color Color) (Color, error) {
	return that.forfeit(color)
}

func (that *Game) forfeit(color Color) (Color, error) {
	if that.IsFinished() {
		return ColorNone, apperror.ErrGameFinished
	}

	winner := color.Opponent()
	that.result = WinnerResult(winner)

	return winner, nil
}

// UndoLastMove rewinds one move, returns the turn to the mover and
// clears a terminal result in case that move ended the game.
func (that *Game) UndoLastMove() (Move, error) {
	move, ok := that.board.Undo()
	if !ok {
		return Move{}, apperror.ErrNothingToUndo
	}

	that.result = ResultInProgress
	that.turn = move.Color

	return move, nil
}

// State is the full snapshot sent to (re)connecting clients.
type State struct {
	Board       [][]Color `json:"board"`
	CurrentTurn Color     `json:"current_turn"`
	Winner      Result    `json:"winner"`
	MoveHistory []Move    `json:"move_history"`
	GameStarted bool      `json:"game_started"`
}

func (that *Game) Snapshot() State {
	return State{
		Board:       that.board.Cells(),
		CurrentTurn: that.turn,
		Winner:      that.result,
		MoveHistory: that.board.Moves(),
		GameStarted: that.started,
	}
}
