package searcher

import "errors"

var (
	// ErrNoLegalMove is returned when a strategy is asked to move on a
	// state with no available moves.
	ErrNoLegalMove = errors.New("no legal move")

	// ErrInvalidConfig is returned by strategy constructors for rejected
	// tuning parameters.
	ErrInvalidConfig = errors.New("invalid search configuration")
)
