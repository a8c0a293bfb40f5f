package game

import (
	"strconv"
	"strings"
)

// Board dimensions for connect-four.
const (
	ConnectFourRows = 6
	ConnectFourCols = 7
)

// ConnectFour is a 6x7 board; moves are column drops and pieces settle on
// the lowest empty row.
type ConnectFour struct {
	board    [ConnectFourRows][ConnectFourCols]string
	winner   string
	lastMove Move
	hasLast  bool
}

func NewConnectFour() *ConnectFour {
	c := &ConnectFour{}
	for r := range c.board {
		for col := range c.board[r] {
			c.board[r][col] = Empty
		}
	}
	return c
}

func (c *ConnectFour) AvailableMoves() []Move {
	moves := []Move{}
	for col := 0; col < ConnectFourCols; col++ {
		if c.board[0][col] == Empty {
			moves = append(moves, Move(col))
		}
	}
	return moves
}

func (c *ConnectFour) HasEmptySquares() bool {
	for col := 0; col < ConnectFourCols; col++ {
		if c.board[0][col] == Empty {
			return true
		}
	}
	return false
}

func (c *ConnectFour) CountEmptySquares() int {
	count := 0
	for r := range c.board {
		for col := range c.board[r] {
			if c.board[r][col] == Empty {
				count++
			}
		}
	}
	return count
}

func (c *ConnectFour) ApplyMove(move Move, player string) bool {
	col := int(move)
	if col < 0 || col >= ConnectFourCols || c.board[0][col] != Empty {
		return false
	}
	for row := ConnectFourRows - 1; row >= 0; row-- {
		if c.board[row][col] == Empty {
			c.board[row][col] = player
			c.lastMove = move
			c.hasLast = true
			if c.winner == "" && c.completesLine(row, col, player) {
				c.winner = player
			}
			return true
		}
	}
	return false
}

// completesLine counts connected pieces through the just-placed cell along
// each of the four axes, in both directions.
func (c *ConnectFour) completesLine(row, col int, player string) bool {
	countFrom := func(deltaRow, deltaCol int) int {
		count := 0
		r, cl := row, col
		for r >= 0 && r < ConnectFourRows && cl >= 0 && cl < ConnectFourCols && c.board[r][cl] == player {
			count++
			r += deltaRow
			cl += deltaCol
		}
		return count
	}

	axes := [][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal down-right
		{1, -1}, // diagonal down-left
	}
	for _, axis := range axes {
		// The placed cell is counted once per direction
		count := countFrom(axis[0], axis[1]) + countFrom(-axis[0], -axis[1]) - 1
		if count >= 4 {
			return true
		}
	}
	return false
}

func (c *ConnectFour) LastMove() (Move, bool) {
	return c.lastMove, c.hasLast
}

func (c *ConnectFour) Winner() string {
	return c.winner
}

func (c *ConnectFour) Clone() State {
	clone := *c
	return &clone
}

// Reset returns the board to its initial empty state.
func (c *ConnectFour) Reset() {
	*c = *NewConnectFour()
}

func (c *ConnectFour) Dims() (int, int) {
	return ConnectFourRows, ConnectFourCols
}

func (c *ConnectFour) At(row, col int) string {
	return c.board[row][col]
}

func (c *ConnectFour) String() string {
	var b strings.Builder
	for row := 0; row < ConnectFourRows; row++ {
		b.WriteString("| " + strings.Join(c.board[row][:], " | ") + " |\n")
	}
	labels := make([]string, ConnectFourCols)
	for col := range labels {
		labels[col] = strconv.Itoa(col)
	}
	b.WriteString("  " + strings.Join(labels, "   ") + "\n")
	return b.String()
}
