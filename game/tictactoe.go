package game

import "strings"

// TicTacToe is a 3x3 board indexed 0..8, row-major.
type TicTacToe struct {
	board    [9]string
	winner   string
	lastMove Move
	hasLast  bool
}

func NewTicTacToe() *TicTacToe {
	t := &TicTacToe{}
	for i := range t.board {
		t.board[i] = Empty
	}
	return t
}

func (t *TicTacToe) AvailableMoves() []Move {
	moves := []Move{}
	for i, cell := range t.board {
		if cell == Empty {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

func (t *TicTacToe) HasEmptySquares() bool {
	for _, cell := range t.board {
		if cell == Empty {
			return true
		}
	}
	return false
}

func (t *TicTacToe) CountEmptySquares() int {
	count := 0
	for _, cell := range t.board {
		if cell == Empty {
			count++
		}
	}
	return count
}

func (t *TicTacToe) ApplyMove(move Move, player string) bool {
	if move < 0 || int(move) >= len(t.board) || t.board[move] != Empty {
		return false
	}
	t.board[move] = player
	t.lastMove = move
	t.hasLast = true
	if t.winner == "" && t.completesLine(move, player) {
		t.winner = player
	}
	return true
}

// completesLine checks only the row, column and (if applicable) diagonals
// through the just-placed square.
func (t *TicTacToe) completesLine(square Move, player string) bool {
	row := int(square) / 3
	if t.board[row*3] == player && t.board[row*3+1] == player && t.board[row*3+2] == player {
		return true
	}

	col := int(square) % 3
	if t.board[col] == player && t.board[col+3] == player && t.board[col+6] == player {
		return true
	}

	// Diagonals only pass through even squares
	if square%2 == 0 {
		if t.board[0] == player && t.board[4] == player && t.board[8] == player {
			return true
		}
		if t.board[2] == player && t.board[4] == player && t.board[6] == player {
			return true
		}
	}

	return false
}

func (t *TicTacToe) LastMove() (Move, bool) {
	return t.lastMove, t.hasLast
}

func (t *TicTacToe) Winner() string {
	return t.winner
}

func (t *TicTacToe) Clone() State {
	clone := *t
	return &clone
}

// Reset returns the board to its initial empty state.
func (t *TicTacToe) Reset() {
	*t = *NewTicTacToe()
}

func (t *TicTacToe) Dims() (int, int) {
	return 3, 3
}

func (t *TicTacToe) At(row, col int) string {
	return t.board[row*3+col]
}

func (t *TicTacToe) String() string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		b.WriteString("| " + strings.Join(t.board[row*3:row*3+3], " | ") + " |\n")
	}
	return b.String()
}
