package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"gridgames/game"
)

func TestNewMCTSConfig(t *testing.T) {
	t.Run("rejects unknown player letters", func(t *testing.T) {
		_, err := NewMCTS("Q")
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("rejects non-positive iterations", func(t *testing.T) {
		_, err := NewMCTS(game.PlayerX, WithIterations(0))
		require.ErrorIs(t, err, ErrInvalidConfig)

		_, err = NewMCTS(game.PlayerX, WithIterations(-5))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("rejects negative exploration", func(t *testing.T) {
		_, err := NewMCTS(game.PlayerX, WithExploration(-0.1))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("defaults to the production constants", func(t *testing.T) {
		m, err := NewMCTS(game.PlayerO)
		require.NoError(t, err)
		require.Equal(t, DefaultIterations, m.iterations)
		require.Equal(t, DefaultExploration, m.exploration)
	})
}

func TestMCTSNoLegalMove(t *testing.T) {
	board := game.NewTicTacToe()
	playOut(t, board, game.PlayerX, 0, 2, 4, 5, 7)
	playOut(t, board, game.PlayerO, 1, 3, 6, 8)

	m, err := NewMCTS(game.PlayerX, WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	_, err = m.FindMove(board)
	require.ErrorIs(t, err, ErrNoLegalMove)

	_, err = m.Evaluate(board)
	require.ErrorIs(t, err, ErrNoLegalMove)
}

func TestMCTSConvergesOnForcedWin(t *testing.T) {
	t.Run("tic-tac-toe row completion", func(t *testing.T) {
		const trials = 20
		hits := 0
		for i := 0; i < trials; i++ {
			board := game.NewTicTacToe()
			playOut(t, board, game.PlayerX, 0, 1)
			playOut(t, board, game.PlayerO, 3, 4)

			m, err := NewMCTS(game.PlayerX, WithRand(rand.New(rand.NewSource(uint64(i)+1))))
			require.NoError(t, err)

			move, err := m.FindMove(board)
			require.NoError(t, err)
			if move == game.Move(2) {
				hits++
			}
		}
		require.GreaterOrEqual(t, hits, trials*95/100,
			"the winning square must be selected in at least 95%% of trials")
	})

	t.Run("connect-four completing column", func(t *testing.T) {
		const trials = 10
		hits := 0
		for i := 0; i < trials; i++ {
			board := game.NewConnectFour()
			playOut(t, board, game.PlayerX, 0, 1, 2)
			playOut(t, board, game.PlayerO, 5, 6)

			m, err := NewMCTS(game.PlayerX, WithRand(rand.New(rand.NewSource(uint64(i)+100))))
			require.NoError(t, err)

			move, err := m.FindMove(board)
			require.NoError(t, err)
			if move == game.Move(3) {
				hits++
			}
		}
		require.GreaterOrEqual(t, hits, trials-1,
			"the completing column must be selected almost always")
	})
}

func TestMCTSVisitAccounting(t *testing.T) {
	board := game.NewTicTacToe()
	playOut(t, board, game.PlayerX, 4)
	playOut(t, board, game.PlayerO, 0)

	m, err := NewMCTS(game.PlayerX,
		WithIterations(300),
		WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)

	tr, err := m.search(board)
	require.NoError(t, err)

	root := tr[rootID]
	require.Equal(t, 300, root.visits, "every iteration backs up through the root")
	require.Len(t, root.children, 7, "full-width expansion covers every legal move")

	childVisits := 0
	for _, move := range root.children {
		child := tr[rootID.child(move)]
		require.Equal(t, rootID, child.parent)
		require.Positive(t, child.visits, "UCT should visit every root child at least once")
		childVisits += child.visits
	}
	require.Equal(t, 300, childVisits, "every backup passes through exactly one root child")
}

func TestMCTSEvaluate(t *testing.T) {
	board := game.NewTicTacToe()
	playOut(t, board, game.PlayerX, 0, 1)
	playOut(t, board, game.PlayerO, 3, 4)

	m, err := NewMCTS(game.PlayerX, WithRand(rand.New(rand.NewSource(3))))
	require.NoError(t, err)

	values, err := m.Evaluate(board)
	require.NoError(t, err)
	require.Len(t, values, 5, "one entry per legal move")

	totalShare := 0.0
	for _, value := range values {
		require.GreaterOrEqual(t, value.Visits, 1)
		require.LessOrEqual(t, value.Mean, 1.0)
		require.GreaterOrEqual(t, value.Mean, -1.0)
		totalShare += value.Share
	}
	require.InDelta(t, 100.0, totalShare, 1e-6, "visit shares are percentages of all root visits")

	winning := values[game.Move(2)]
	require.Greater(t, winning.Mean, 0.9, "the immediate win should back up a near-certain value")
}

func TestMCTSDeterministicWithSeed(t *testing.T) {
	newSearch := func() game.Move {
		board := game.NewTicTacToe()
		playOut(t, board, game.PlayerX, 4)
		playOut(t, board, game.PlayerO, 8)

		m, err := NewMCTS(game.PlayerX,
			WithIterations(200),
			WithRand(rand.New(rand.NewSource(99))))
		require.NoError(t, err)

		move, err := m.FindMove(board)
		require.NoError(t, err)
		return move
	}

	require.Equal(t, newSearch(), newSearch(), "a pinned random source pins the whole search")
}

func TestMCTSDoesNotMutateInput(t *testing.T) {
	board := game.NewTicTacToe()
	playOut(t, board, game.PlayerX, 4)
	playOut(t, board, game.PlayerO, 0)
	emptyBefore := board.CountEmptySquares()

	m, err := NewMCTS(game.PlayerX,
		WithIterations(100),
		WithRand(rand.New(rand.NewSource(5))))
	require.NoError(t, err)

	_, err = m.FindMove(board)
	require.NoError(t, err)

	require.Equal(t, emptyBefore, board.CountEmptySquares(), "the search works on clones only")
	require.Empty(t, board.Winner())
}
