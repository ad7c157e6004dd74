package entity

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Place(t *testing.T) {
	t.Run("Places a stone on an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: placing a black stone
		won, err := board.Place(7, 7, ColorBlack)

		// Then: the stone is on the board and nobody has won yet
		require.NoError(t, err)
		assert.False(t, won)
		assert.Equal(t, ColorBlack, board.At(7, 7))
		assert.Equal(t, 1, board.MoveCount())
	})

	t.Run("Rejects a move outside the board", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: placing stones outside the 15x15 grid
		_, errNegative := board.Place(-1, 3, ColorBlack)
		_, errTooFar := board.Place(3, BoardSize, ColorBlack)

		// Then: both moves are rejected and the board stays empty
		require.ErrorIs(t, errNegative, apperror.ErrOutOfBounds)
		require.ErrorIs(t, errTooFar, apperror.ErrOutOfBounds)
		assert.Equal(t, 0, board.MoveCount())
	})

	t.Run("Rejects a move on an occupied cell", func(t *testing.T) {
		// Given: a board with a black stone at (5, 5)
		board := NewBoard()
		_, err := board.Place(5, 5, ColorBlack)
		require.NoError(t, err)

		// When: placing a white stone on the same cell
		_, err = board.Place(5, 5, ColorWhite)

		// Then: the move is rejected and the cell keeps its color
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, ColorBlack, board.At(5, 5))
	})
}

func TestBoard_WinDetection(t *testing.T) {
	lines := map[string][5][2]int{
		"horizontal":          {{7, 3}, {7, 4}, {7, 5}, {7, 6}, {7, 7}},
		"vertical":            {{3, 7}, {4, 7}, {5, 7}, {6, 7}, {7, 7}},
		"diagonal down-right": {{3, 3}, {4, 4}, {5, 5}, {6, 6}, {7, 7}},
		"diagonal down-left":  {{3, 11}, {4, 10}, {5, 9}, {6, 8}, {7, 7}},
	}

	for name, cells := range lines {
		t.Run("Detects five in a row "+name, func(t *testing.T) {
			// Given: four black stones on the line
			board := NewBoard()
			for _, cell := range cells[:4] {
				won, err := board.Place(cell[0], cell[1], ColorBlack)
				require.NoError(t, err)
				require.False(t, won)
			}

			// When: placing the fifth stone
			won, err := board.Place(cells[4][0], cells[4][1], ColorBlack)

			// Then: the line is reported as a win
			require.NoError(t, err)
			assert.True(t, won)
		})
	}

	t.Run("Does not report a win for a broken line", func(t *testing.T) {
		// Given: four black stones with a white stone in the middle
		board := NewBoard()
		for col := 3; col < 7; col++ {
			_, err := board.Place(7, col, ColorBlack)
			require.NoError(t, err)
		}
		_, err := board.Place(7, 7, ColorWhite)
		require.NoError(t, err)

		// When: extending the black line past the blocker
		won, err := board.Place(7, 8, ColorBlack)

		// Then: no win is reported
		require.NoError(t, err)
		assert.False(t, won)
	})

	t.Run("Detects a win completed in the middle of the line", func(t *testing.T) {
		// Given: two black stones on each side of a gap
		board := NewBoard()
		for _, col := range []int{3, 4, 6, 7} {
			_, err := board.Place(7, col, ColorBlack)
			require.NoError(t, err)
		}

		// When: filling the gap
		won, err := board.Place(7, 5, ColorBlack)

		// Then: the line counts both directions and wins
		require.NoError(t, err)
		assert.True(t, won)
	})
}

func TestBoard_Undo(t *testing.T) {
	t.Run("Undo removes the last move", func(t *testing.T) {
		// Given: a board with two moves
		board := NewBoard()
		_, err := board.Place(7, 7, ColorBlack)
		require.NoError(t, err)
		_, err = board.Place(7, 8, ColorWhite)
		require.NoError(t, err)

		// When: undoing the last move
		move, ok := board.Undo()

		// Then: the white move is returned and its cell is empty again
		require.True(t, ok)
		assert.Equal(t, Move{Row: 7, Col: 8, Color: ColorWhite}, move)
		assert.Equal(t, ColorNone, board.At(7, 8))
		assert.Equal(t, 1, board.MoveCount())
	})

	t.Run("Undo on an empty board reports nothing to undo", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: undoing
		_, ok := board.Undo()

		// Then: there is nothing to return
		assert.False(t, ok)
	})

	t.Run("Place then Undo restores the previous position", func(t *testing.T) {
		// Given: a board with one stone
		board := NewBoard()
		_, err := board.Place(0, 0, ColorBlack)
		require.NoError(t, err)
		before := board.Cells()

		// When: placing and undoing another stone
		_, err = board.Place(14, 14, ColorWhite)
		require.NoError(t, err)
		_, ok := board.Undo()
		require.True(t, ok)

		// Then: the grid matches the position before the move
		assert.Equal(t, before, board.Cells())
	})
}

func TestBoard_Cells(t *testing.T) {
	t.Run("Cells returns a copy, not a view", func(t *testing.T) {
		// Given: a board with one stone
		board := NewBoard()
		_, err := board.Place(2, 3, ColorBlack)
		require.NoError(t, err)

		// When: mutating the returned grid
		grid := board.Cells()
		grid[2][3] = ColorWhite

		// Then: the board itself is unchanged
		assert.Equal(t, ColorBlack, board.At(2, 3))
	})
}
