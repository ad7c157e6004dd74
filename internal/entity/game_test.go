package entity

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_PlaceStone(t *testing.T) {
	t.Run("Black moves first and the turn alternates", func(t *testing.T) {
		// Given: a fresh game
		game := NewGame()
		require.Equal(t, ColorBlack, game.Turn())

		// When: playing a short opening
		require.NoError(t, game.PlaceStone(7, 7, ColorBlack))
		require.NoError(t, game.PlaceStone(7, 8, ColorWhite))
		require.NoError(t, game.PlaceStone(8, 7, ColorBlack))
		require.NoError(t, game.PlaceStone(6, 8, ColorWhite))

		// Then: it is black's turn again and the game is still open
		assert.Equal(t, ColorBlack, game.Turn())
		assert.Equal(t, ResultInProgress, game.Result())
		assert.Equal(t, 4, game.Board().MoveCount())
	})

	t.Run("Rejects a move out of turn", func(t *testing.T) {
		// Given: a fresh game where black is to move
		game := NewGame()

		// When: white tries to move first
		err := game.PlaceStone(7, 7, ColorWhite)

		// Then: the move is rejected and the turn is unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, ColorBlack, game.Turn())
	})

	t.Run("A winning move ends the game and freezes the turn", func(t *testing.T) {
		// Given: black one stone away from five in a row
		game := NewGame()
		for i := 0; i < 4; i++ {
			require.NoError(t, game.PlaceStone(7, 3+i, ColorBlack))
			require.NoError(t, game.PlaceStone(8, 3+i, ColorWhite))
		}

		// When: black completes the line
		require.NoError(t, game.PlaceStone(7, 7, ColorBlack))

		// Then: black wins and no further moves are accepted
		assert.Equal(t, ResultBlackWin, game.Result())
		assert.True(t, game.IsFinished())
		assert.ErrorIs(t, game.PlaceStone(0, 0, ColorWhite), apperror.ErrGameFinished)
	})

	t.Run("Filling the last cell without a winner is a draw", func(t *testing.T) {
		// Given: a full board minus one cell, tiled in 2x1 blocks so no
		// line reaches five
		game := NewGame()
		for row := 0; row < BoardSize; row++ {
			for col := 0; col < BoardSize; col++ {
				if row == BoardSize-1 && col == BoardSize-1 {
					continue
				}
				color := tileColor(row, col)
				game.board.cells[row][col] = color
				game.board.moves = append(game.board.moves, Move{Row: row, Col: col, Color: color})
			}
		}
		game.turn = tileColor(BoardSize-1, BoardSize-1)

		// When: placing the last stone
		err := game.PlaceStone(BoardSize-1, BoardSize-1, game.turn)

		// Then: the game ends in a draw
		require.NoError(t, err)
		assert.Equal(t, ResultDraw, game.Result())
		assert.True(t, game.IsFinished())
	})
}

// tileColor paints the board in two-cell blocks whose parity flips every
// row, which caps every run at two stones.
func tileColor(row, col int) Color {
	if (col/2+row)%2 == 0 {
		return ColorBlack
	}

	return ColorWhite
}

func TestGame_ResignAndTimeout(t *testing.T) {
	t.Run("Resigning hands the win to the opponent", func(t *testing.T) {
		// Given: an open game
		game := NewGame()
		require.NoError(t, game.PlaceStone(7, 7, ColorBlack))

		// When: black resigns
		winner, err := game.Resign(ColorBlack)

		// Then: white wins and the game is finished
		require.NoError(t, err)
		assert.Equal(t, ColorWhite, winner)
		assert.Equal(t, ResultWhiteWin, game.Result())
	})

	t.Run("Timing out is the same forfeit", func(t *testing.T) {
		// Given: an open game
		game := NewGame()

		// When: white times out
		winner, err := game.Timeout(ColorWhite)

		// Then: black wins
		require.NoError(t, err)
		assert.Equal(t, ColorBlack, winner)
		assert.Equal(t, ResultBlackWin, game.Result())
	})

	t.Run("A finished game rejects a second forfeit", func(t *testing.T) {
		// Given: a game already decided by resignation
		game := NewGame()
		_, err := game.Resign(ColorBlack)
		require.NoError(t, err)

		// When: the other side resigns too
		_, err = game.Resign(ColorWhite)

		// Then: the result is untouched
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, ResultWhiteWin, game.Result())
	})
}

func TestGame_UndoLastMove(t *testing.T) {
	t.Run("Undo rewinds one move and returns the turn to the mover", func(t *testing.T) {
		// Given: a game where white just moved
		game := NewGame()
		require.NoError(t, game.PlaceStone(7, 7, ColorBlack))
		require.NoError(t, game.PlaceStone(7, 8, ColorWhite))
		require.Equal(t, ColorBlack, game.Turn())

		// When: undoing the last move
		move, err := game.UndoLastMove()

		// Then: white is to move again and their stone is gone
		require.NoError(t, err)
		assert.Equal(t, ColorWhite, move.Color)
		assert.Equal(t, ColorWhite, game.Turn())
		assert.Equal(t, ColorNone, game.Board().At(7, 8))
	})

	t.Run("Undo reopens a game that the move had just won", func(t *testing.T) {
		// Given: a game black just won
		game := NewGame()
		for i := 0; i < 4; i++ {
			require.NoError(t, game.PlaceStone(7, 3+i, ColorBlack))
			require.NoError(t, game.PlaceStone(8, 3+i, ColorWhite))
		}
		require.NoError(t, game.PlaceStone(7, 7, ColorBlack))
		require.True(t, game.IsFinished())

		// When: undoing the winning move
		_, err := game.UndoLastMove()

		// Then: the game is in progress again with black to move
		require.NoError(t, err)
		assert.Equal(t, ResultInProgress, game.Result())
		assert.Equal(t, ColorBlack, game.Turn())
	})

	t.Run("Undo with no moves reports nothing to undo", func(t *testing.T) {
		// Given: a fresh game
		game := NewGame()

		// When: undoing
		_, err := game.UndoLastMove()

		// Then: the call is rejected
		require.ErrorIs(t, err, apperror.ErrNothingToUndo)
	})
}

func TestGame_Reset(t *testing.T) {
	t.Run("Reset clears the board but keeps the started flag", func(t *testing.T) {
		// Given: a started game with moves on the board
		game := NewGame()
		game.SetStarted(true)
		require.NoError(t, game.PlaceStone(7, 7, ColorBlack))
		_, err := game.Resign(ColorWhite)
		require.NoError(t, err)

		// When: resetting
		game.Reset()

		// Then: the position and result are fresh, started is untouched
		assert.Equal(t, 0, game.Board().MoveCount())
		assert.Equal(t, ColorBlack, game.Turn())
		assert.Equal(t, ResultInProgress, game.Result())
		assert.True(t, game.Started())
	})
}

func TestGame_Snapshot(t *testing.T) {
	t.Run("Snapshot carries the full position", func(t *testing.T) {
		// Given: a started game with one move
		game := NewGame()
		game.SetStarted(true)
		require.NoError(t, game.PlaceStone(7, 7, ColorBlack))

		// When: taking a snapshot
		state := game.Snapshot()

		// Then: board, turn, history and flags all match
		assert.Equal(t, ColorBlack, state.Board[7][7])
		assert.Equal(t, ColorWhite, state.CurrentTurn)
		assert.Equal(t, ResultInProgress, state.Winner)
		assert.Len(t, state.MoveHistory, 1)
		assert.True(t, state.GameStarted)
	})
}
