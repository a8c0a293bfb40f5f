package searcher

import (
	"strconv"

	"golang.org/x/exp/rand"

	"gridgames/game"
)

// nodeID encodes the move path from the root, so the id doubles as the
// node's address in the arena and the tree is discarded by dropping the map.
type nodeID string

const rootID nodeID = "0"

func (id nodeID) child(move game.Move) nodeID {
	return id + nodeID("."+strconv.Itoa(int(move)))
}

// node is one explored state in the search tree. Its state clone is owned
// exclusively by the node.
type node struct {
	state    game.State
	player   string      // player to move at this node
	children []game.Move // expanded moves, in expansion order
	parent   nodeID      // "" for the root
	visits   int         // n
	total    float64     // w
	mean     float64     // q = w / (n + Epsilon)
}

// tree is an arena of nodes keyed by path id. Parent links are ids, not
// pointers, so there are no ownership cycles.
type tree map[nodeID]*node

func newTree(state game.State, player string) tree {
	return tree{rootID: &node{state: state.Clone(), player: player}}
}

// selectLeaf descends from the root along max-UCT children until it reaches
// a node with no expanded children. The root's visit count is the shared
// denominator for every comparison in this pass; ties go to the first
// maximum in child order.
func (t tree) selectLeaf(exploration float64) nodeID {
	policy := newUCT(exploration, t[rootID].visits)

	id := rootID
	for len(t[id].children) > 0 {
		var best nodeID
		bestScore := 0.0
		for i, move := range t[id].children {
			childID := id.child(move)
			child := t[childID]
			if score := policy.score(child.total, child.visits); i == 0 || score > bestScore {
				best = childID
				bestScore = score
			}
		}
		id = best
	}
	return id
}

// expand creates one child per legal move of an unvisited leaf and returns
// a uniformly random child to simulate from. Visited or terminal leaves are
// returned unchanged and simulated directly.
func (t tree) expand(id nodeID, rng *rand.Rand) nodeID {
	leaf := t[id]
	if leaf.visits > 0 {
		return id
	}

	moves := leaf.state.AvailableMoves()
	if len(moves) == 0 {
		return id
	}

	next := game.Opponent(leaf.player)
	created := make([]nodeID, 0, len(moves))
	for _, move := range moves {
		childState := leaf.state.Clone()
		childState.ApplyMove(move, leaf.player)
		childID := id.child(move)
		t[childID] = &node{state: childState, player: next, parent: id}
		leaf.children = append(leaf.children, move)
		created = append(created, childID)
	}
	return created[rng.Intn(len(created))]
}

// backup propagates result from the simulated node to the root, negating it
// at each level so every node accumulates value from the perspective of the
// player who moved into it.
func (t tree) backup(id nodeID, result float64) {
	for {
		n := t[id]
		n.visits++
		n.total += result
		n.mean = n.total / (float64(n.visits) + Epsilon)

		if id == rootID {
			return
		}
		result = -result
		id = n.parent
	}
}
