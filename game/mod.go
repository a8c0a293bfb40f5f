package game

// Move identifies where a piece is placed: a cell index for tic-tac-toe,
// a column index for connect-four.
type Move int

// Player letters. X always moves first.
const (
	PlayerX = "X"
	PlayerO = "O"
)

// Empty is the content of an unoccupied cell.
const Empty = " "

// Opponent returns the other player's letter.
func Opponent(player string) string {
	if player == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// State is the contract both search strategies operate through. Implementations
// mutate in place via ApplyMove; a strategy exploring a hypothetical
// continuation must Clone first and owns the clone exclusively.
type State interface {
	// AvailableMoves returns all currently legal moves in ascending order.
	// Legality is occupancy only: a won board can still list moves, so
	// callers must check Winner independently.
	AvailableMoves() []Move

	// ApplyMove places player's mark for move and reports whether the move
	// was legal. An illegal move performs no mutation. The win check is
	// centered on the just-placed cell; a completed line sets the winner.
	ApplyMove(move Move, player string) bool

	HasEmptySquares() bool
	CountEmptySquares() int

	// LastMove returns the most recently applied move, if any.
	LastMove() (Move, bool)

	// Winner returns the winning player's letter, or "" if there is none.
	// Once set it is never overwritten or cleared except by a fresh reset.
	Winner() string

	// Clone returns a deep, independent copy sharing no mutable structure
	// with the receiver.
	Clone() State
}

// Grid exposes board cells for rendering.
type Grid interface {
	Dims() (rows, cols int)
	At(row, col int) string
}
