package searcher

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"gridgames/game"
)

type Option func(m *MCTS)

// MCTS is an iteration-bounded Monte Carlo tree search with UCT selection.
// Each decision builds a fresh tree from a clone of the input state and
// discards it once the move is returned.
type MCTS struct {
	player      string
	iterations  int
	exploration float64
	rng         *rand.Rand
}

// MoveValue is one root move's statistics after a search: its mean value,
// raw visit count and share of all root child visits.
type MoveValue struct {
	Mean   float64
	Visits int
	Share  float64 // percentage
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = iterations
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		m.exploration = c
	}
}

// WithRand injects the random source used for the expansion child pick and
// rollout tie-breaks, so tests can pin outcomes.
func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		m.rng = rng
	}
}

func NewMCTS(player string, options ...Option) (*MCTS, error) {
	m := &MCTS{
		player:      player,
		iterations:  DefaultIterations,
		exploration: DefaultExploration,
	}
	for _, option := range options {
		option(m)
	}

	if m.player != game.PlayerX && m.player != game.PlayerO {
		return nil, fmt.Errorf("%w: unknown player %q", ErrInvalidConfig, m.player)
	}
	if m.iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations %d must be positive", ErrInvalidConfig, m.iterations)
	}
	if m.exploration < 0 {
		return nil, fmt.Errorf("%w: exploration constant %g must be >= 0", ErrInvalidConfig, m.exploration)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m, nil
}

func (m *MCTS) Letter() string {
	return m.player
}

// FindMove runs the search and returns the root move with the highest mean
// value, ties broken by root expansion order.
func (m *MCTS) FindMove(state game.State) (game.Move, error) {
	t, err := m.search(state)
	if err != nil {
		return 0, err
	}

	root := t[rootID]
	best := root.children[0]
	bestMean := t[rootID.child(best)].mean
	for _, move := range root.children[1:] {
		if mean := t[rootID.child(move)].mean; mean > bestMean {
			best = move
			bestMean = mean
		}
	}
	return best, nil
}

// Evaluate runs the search and reports every root move's statistics, for
// external logging.
func (m *MCTS) Evaluate(state game.State) (map[game.Move]MoveValue, error) {
	t, err := m.search(state)
	if err != nil {
		return nil, err
	}

	root := t[rootID]
	totalVisits := 0
	for _, move := range root.children {
		totalVisits += t[rootID.child(move)].visits
	}

	values := make(map[game.Move]MoveValue, len(root.children))
	for _, move := range root.children {
		child := t[rootID.child(move)]
		values[move] = MoveValue{
			Mean:   child.mean,
			Visits: child.visits,
			Share:  float64(child.visits) / float64(totalVisits) * 100,
		}
	}
	return values, nil
}

// search runs the four-phase loop for the configured number of iterations.
func (m *MCTS) search(state game.State) (tree, error) {
	if len(state.AvailableMoves()) == 0 {
		return nil, ErrNoLegalMove
	}

	t := newTree(state, m.player)
	for i := 0; i < m.iterations; i++ {
		leafID := t.selectLeaf(m.exploration)
		simID := t.expand(leafID, m.rng)
		result := m.rollout(t[simID].state, t[simID].player)
		t.backup(simID, result)
	}
	return t, nil
}

// rollout plays out the state with a lightly-informed policy: the searching
// player takes an instant win immediately, and moves that produce a winner
// for any other mover are scored down rather than played. Returns +1/-1/0
// from the searching player's perspective.
func (m *MCTS) rollout(state game.State, mover string) float64 {
	st := state.Clone()

	for st.HasEmptySquares() {
		moves := st.AvailableMoves()
		scores := make([]int, len(moves))
		for i, move := range moves {
			probe := st.Clone()
			probe.ApplyMove(move, mover)
			switch {
			case probe.Winner() == mover && mover == m.player:
				return 1 // instant win for the searching player
			case probe.Winner() != "":
				scores[i] = rolloutBadMove
			default:
				scores[i] = rolloutNeutral
			}
		}

		move := moves[pickMaxScore(scores, m.rng)]
		st.ApplyMove(move, mover)

		if winner := st.Winner(); winner != "" {
			if winner == m.player {
				return 1
			}
			return -1
		}

		mover = game.Opponent(mover)
	}

	return 0 // draw
}

// pickMaxScore returns the index of a uniformly random entry among those
// sharing the maximum score.
func pickMaxScore(scores []int, rng *rand.Rand) int {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}

	best := []int{}
	for i, s := range scores {
		if s == maxScore {
			best = append(best, i)
		}
	}
	return best[rng.Intn(len(best))]
}
