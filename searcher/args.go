package searcher

// Hyperparameters and defaults for the search strategies

// Epsilon guards mean-value and UCT denominators against division by zero
// for unvisited nodes.
const Epsilon = 1e-4

// Production MCTS constants
const (
	DefaultIterations  = 1500
	DefaultExploration = 20.0
)

// Rollout move scores: a move handing a win to a non-searching mover is
// avoided, everything else is neutral.
const (
	rolloutNeutral = 0
	rolloutBadMove = -100
)
