package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"gridgames/game"
)

// mockState scripts the move list so tree operations can be tested without
// a real game.
type mockState struct {
	moves  []game.Move
	played []game.Move
	winner string
}

func (m *mockState) AvailableMoves() []game.Move {
	return append([]game.Move{}, m.moves...)
}

func (m *mockState) ApplyMove(move game.Move, player string) bool {
	for i, candidate := range m.moves {
		if candidate == move {
			m.moves = append(m.moves[:i:i], m.moves[i+1:]...)
			m.played = append(m.played, move)
			return true
		}
	}
	return false
}

func (m *mockState) HasEmptySquares() bool {
	return len(m.moves) > 0
}

func (m *mockState) CountEmptySquares() int {
	return len(m.moves)
}

func (m *mockState) LastMove() (game.Move, bool) {
	if len(m.played) == 0 {
		return 0, false
	}
	return m.played[len(m.played)-1], true
}

func (m *mockState) Winner() string {
	return m.winner
}

func (m *mockState) Clone() game.State {
	return &mockState{
		moves:  append([]game.Move{}, m.moves...),
		played: append([]game.Move{}, m.played...),
		winner: m.winner,
	}
}

func TestExpand(t *testing.T) {
	t.Run("unvisited leaf expands every legal move", func(t *testing.T) {
		state := &mockState{moves: []game.Move{0, 1, 2}}
		tr := newTree(state, game.PlayerX)
		rng := rand.New(rand.NewSource(1))

		simID := tr.expand(rootID, rng)

		root := tr[rootID]
		require.Equal(t, []game.Move{0, 1, 2}, root.children, "children should follow move order")
		require.Len(t, tr, 4, "arena should hold the root plus one node per move")
		for _, move := range root.children {
			child := tr[rootID.child(move)]
			require.Equal(t, game.PlayerO, child.player, "child to-move should flip")
			require.Equal(t, rootID, child.parent)
			require.Zero(t, child.visits)
			require.Zero(t, child.total)
			require.Equal(t, 2, child.state.CountEmptySquares(), "child state should have the move applied")
		}
		require.Contains(t, []nodeID{rootID.child(0), rootID.child(1), rootID.child(2)}, simID,
			"simulation node should be one of the new children")
	})

	t.Run("visited childless leaf is terminal and stays unexpanded", func(t *testing.T) {
		state := &mockState{moves: []game.Move{0}, winner: game.PlayerX}
		tr := newTree(state, game.PlayerO)
		tr[rootID].visits = 3

		simID := tr.expand(rootID, rand.New(rand.NewSource(1)))

		require.Equal(t, rootID, simID, "visited leaf should be simulated directly")
		require.Empty(t, tr[rootID].children)
	})

	t.Run("leaf with no moves stays unexpanded", func(t *testing.T) {
		state := &mockState{}
		tr := newTree(state, game.PlayerX)

		simID := tr.expand(rootID, rand.New(rand.NewSource(1)))

		require.Equal(t, rootID, simID)
		require.Empty(t, tr[rootID].children)
	})
}

func TestSelectLeaf(t *testing.T) {
	t.Run("unvisited child is selected before visited siblings", func(t *testing.T) {
		tr := newTree(&mockState{moves: []game.Move{0, 1}}, game.PlayerX)
		tr[rootID].visits = 2
		tr[rootID].children = []game.Move{0, 1}
		tr[rootID.child(0)] = &node{parent: rootID, visits: 2, total: 2, mean: 1}
		tr[rootID.child(1)] = &node{parent: rootID}

		got := tr.selectLeaf(DefaultExploration)

		require.Equal(t, rootID.child(1), got,
			"epsilon visit guard should make the unvisited child score highest")
	})

	t.Run("with no exploration the higher mean child wins", func(t *testing.T) {
		tr := newTree(&mockState{moves: []game.Move{0, 1}}, game.PlayerX)
		tr[rootID].visits = 10
		tr[rootID].children = []game.Move{0, 1}
		tr[rootID.child(0)] = &node{parent: rootID, visits: 5, total: 1}
		tr[rootID.child(1)] = &node{parent: rootID, visits: 5, total: 4}

		got := tr.selectLeaf(0)

		require.Equal(t, rootID.child(1), got)
	})

	t.Run("ties go to the first child in expansion order", func(t *testing.T) {
		tr := newTree(&mockState{moves: []game.Move{0, 1, 2}}, game.PlayerX)
		tr[rootID].visits = 9
		tr[rootID].children = []game.Move{0, 1, 2}
		for _, move := range tr[rootID].children {
			tr[rootID.child(move)] = &node{parent: rootID, visits: 3, total: 1}
		}

		got := tr.selectLeaf(DefaultExploration)

		require.Equal(t, rootID.child(0), got)
	})

	t.Run("descends through fully expanded levels to a leaf", func(t *testing.T) {
		tr := newTree(&mockState{moves: []game.Move{0}}, game.PlayerX)
		tr[rootID].visits = 4
		tr[rootID].children = []game.Move{0}
		tr[rootID.child(0)] = &node{parent: rootID, visits: 4, total: 2, children: []game.Move{5}}
		deep := rootID.child(0).child(5)
		tr[deep] = &node{parent: rootID.child(0), visits: 1, total: 1}

		got := tr.selectLeaf(DefaultExploration)

		require.Equal(t, deep, got, "selection should stop at the first childless node")
	})
}

func TestBackup(t *testing.T) {
	tr := newTree(&mockState{moves: []game.Move{0}}, game.PlayerX)
	mid := rootID.child(0)
	leaf := mid.child(3)
	tr[rootID].children = []game.Move{0}
	tr[mid] = &node{parent: rootID, children: []game.Move{3}}
	tr[leaf] = &node{parent: mid}

	tr.backup(leaf, 1)

	require.Equal(t, 1, tr[leaf].visits)
	require.Equal(t, 1.0, tr[leaf].total, "simulated node keeps the raw result")
	require.Equal(t, 1, tr[mid].visits)
	require.Equal(t, -1.0, tr[mid].total, "result should flip sign at the parent")
	require.Equal(t, 1, tr[rootID].visits)
	require.Equal(t, 1.0, tr[rootID].total, "result should flip sign again at the root")
	require.InDelta(t, 1.0/(1.0+Epsilon), tr[leaf].mean, 1e-9, "mean uses the epsilon guard")

	tr.backup(leaf, -1)

	require.Equal(t, 2, tr[leaf].visits)
	require.Equal(t, 0.0, tr[leaf].total)
	require.Equal(t, 0.0, tr[mid].total)
	require.Equal(t, 0.0, tr[rootID].total)
}
