package searcher

import (
	"fmt"
	"math"

	"gridgames/game"
)

// AlphaBeta is a depth-limited minimax strategy with alpha-beta pruning.
// It is fully deterministic: identical inputs always yield the same move.
type AlphaBeta struct {
	player   string
	maxDepth int
}

// minimaxResult pairs a recommended move with its backed-up score from the
// searching player's perspective.
type minimaxResult struct {
	move  game.Move
	score float64
}

func NewAlphaBeta(player string, maxDepth int) (*AlphaBeta, error) {
	if player != game.PlayerX && player != game.PlayerO {
		return nil, fmt.Errorf("%w: unknown player %q", ErrInvalidConfig, player)
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("%w: max depth %d must be >= 0", ErrInvalidConfig, maxDepth)
	}
	return &AlphaBeta{player: player, maxDepth: maxDepth}, nil
}

func (ab *AlphaBeta) Letter() string {
	return ab.player
}

// FindMove returns the move with the best guaranteed minimax value, ties
// broken by the first maximum in AvailableMoves order.
func (ab *AlphaBeta) FindMove(state game.State) (game.Move, error) {
	moves := state.AvailableMoves()
	if len(moves) == 0 {
		return 0, ErrNoLegalMove
	}

	best := moves[0]
	bestScore := math.Inf(-1)
	for _, move := range moves {
		score := ab.scoreMove(state, move)
		if score > bestScore {
			best = move
			bestScore = score
		}
	}
	return best, nil
}

// MoveValues reports each candidate move's minimax score, for external
// logging. The mapping is empty-checked the same way as FindMove.
func (ab *AlphaBeta) MoveValues(state game.State) (map[game.Move]float64, error) {
	moves := state.AvailableMoves()
	if len(moves) == 0 {
		return nil, ErrNoLegalMove
	}

	values := make(map[game.Move]float64, len(moves))
	for _, move := range moves {
		values[move] = ab.scoreMove(state, move)
	}
	return values, nil
}

// scoreMove pre-applies the searching player's candidate move and evaluates
// the resulting state with the opponent to move.
func (ab *AlphaBeta) scoreMove(state game.State, move game.Move) float64 {
	child := state.Clone()
	child.ApplyMove(move, ab.player)
	result := ab.minimax(child, game.Opponent(ab.player), math.Inf(-1), math.Inf(1), 0)
	return result.score
}

// minimax evaluates state with mover to play. A win is detected for the
// player who just moved into this state, scored by the remaining empty
// squares so that faster wins (and slower losses) score higher.
func (ab *AlphaBeta) minimax(state game.State, mover string, alpha, beta float64, depth int) minimaxResult {
	justMoved := game.Opponent(mover)

	if state.Winner() == justMoved {
		score := float64(state.CountEmptySquares() + 1)
		if justMoved != ab.player {
			score = -score
		}
		return minimaxResult{score: score}
	}

	if !state.HasEmptySquares() {
		return minimaxResult{score: 0}
	}

	if depth == ab.maxDepth {
		return minimaxResult{score: ab.evaluate(state)}
	}

	maximizing := mover == ab.player
	best := minimaxResult{score: math.Inf(1)}
	if maximizing {
		best.score = math.Inf(-1)
	}

	for _, move := range state.AvailableMoves() {
		child := state.Clone()
		child.ApplyMove(move, mover)
		sim := ab.minimax(child, justMoved, alpha, beta, depth+1)
		sim.move = move

		if maximizing {
			if sim.score > best.score {
				best = sim
			}
			alpha = math.Max(alpha, best.score)
		} else {
			if sim.score < best.score {
				best = sim
			}
			beta = math.Min(beta, best.score)
		}

		if beta <= alpha {
			break
		}
	}

	return best
}

// evaluate is the static heuristic at the depth cutoff: win +1, loss -1,
// anything else 0.
func (ab *AlphaBeta) evaluate(state game.State) float64 {
	switch state.Winner() {
	case ab.player:
		return 1
	case game.Opponent(ab.player):
		return -1
	}
	return 0
}
