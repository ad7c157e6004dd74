package entity

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const (
	BoardSize  = 15
	TotalCells = BoardSize * BoardSize

	winLength = 5
)

// Color is a cell value on the wire: 0 empty, 1 black, 2 white.
type Color uint8

const (
	ColorNone  Color = 0
	ColorBlack Color = 1
	ColorWhite Color = 2
)

func (that Color) Opponent() Color {
	switch that {
	case ColorBlack:
		return ColorWhite
	case ColorWhite:
		return ColorBlack
	default:
		return ColorNone
	}
}

func (that Color) String() string {
	switch that {
	case ColorBlack:
		return "black"
	case ColorWhite:
		return "white"
	default:
		return ""
	}
}

type Move struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Color Color `json:"color"`
}

// Board holds the grid and the move history. It knows nothing about
// turns or results; that is the Game's job.
type Board struct {
	cells [BoardSize][BoardSize]Color
	moves []Move
}

func NewBoard() *Board {
	return &Board{moves: make([]Move, 0, TotalCells)}
}

// Place puts a stone and reports whether it completed five in a row.
func (that *Board) Place(row, col int, color Color) (bool, error) {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return false, apperror.ErrOutOfBounds
	}

	if that.cells[row][col] != ColorNone {
		return false, apperror.ErrCellOccupied
	}

	that.cells[row][col] = color
	that.moves = append(that.moves, Move{Row: row, Col: col, Color: color})

	return that.winsAt(row, col, color), nil
}

// Undo removes the last move and returns it.
func (that *Board) Undo() (Move, bool) {
	if len(that.moves) == 0 {
		return Move{}, false
	}

	last := that.moves[len(that.moves)-1]
	that.moves = that.moves[:len(that.moves)-1]
	that.cells[last.Row][last.Col] = ColorNone

	return last, true
}

func (that *Board) At(row, col int) Color {
	return that.cells[row][col]
}

func (that *Board) Moves() []Move {
	moves := make([]Move, len(that.moves))
	copy(moves, that.moves)

	return moves
}

func (that *Board) MoveCount() int {
	return len(that.moves)
}

func (that *Board) IsFull() bool {
	return len(that.moves) >= TotalCells
}

// Cells returns a row-major copy of the grid for state syncs.
func (that *Board) Cells() [][]Color {
	grid := make([][]Color, BoardSize)
	for r := range that.cells {
		row := make([]Color, BoardSize)
		copy(row, that.cells[r][:])
		grid[r] = row
	}

	return grid
}

// winsAt scans the four axis directions from the placed cell, counting
// contiguous same-color stones both ways, the placed stone included.
func (that *Board) winsAt(row, col int, color Color) bool {
	directions := [4][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal down-right
		{1, -1}, // diagonal down-left
	}

	for _, dir := range directions {
		dr, dc := dir[0], dir[1]
		count := 1

		for r, c := row+dr, col+dc; that.sameColor(r, c, color); r, c = r+dr, c+dc {
			count++
		}

		for r, c := row-dr, col-dc; that.sameColor(r, c, color); r, c = r-dr, c-dc {
			count++
		}

		if count >= winLength {
			return true
		}
	}

	return false
}

func (that *Board) sameColor(row, col int, color Color) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize && that.cells[row][col] == color
}
