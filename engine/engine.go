package engine

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/exp/rand"

	"gridgames/game"
)

// Agent chooses one move per turn for its letter. The engine passes the
// authoritative state; agents must clone before exploring.
type Agent interface {
	Letter() string
	FindMove(state game.State) (game.Move, error)
}

// RandomAgent plays a uniformly random legal move. Useful as a baseline
// opponent.
type RandomAgent struct {
	letter string
	rng    *rand.Rand
}

func NewRandomAgent(letter string, rng *rand.Rand) *RandomAgent {
	return &RandomAgent{letter: letter, rng: rng}
}

func (a *RandomAgent) Letter() string {
	return a.letter
}

func (a *RandomAgent) FindMove(state game.State) (game.Move, error) {
	moves := state.AvailableMoves()
	if len(moves) == 0 {
		return 0, fmt.Errorf("random agent %s: no legal move", a.letter)
	}
	return moves[a.rng.Intn(len(moves))], nil
}

// HumanAgent prompts for a move index until a legal one is entered.
type HumanAgent struct {
	letter string
	in     *bufio.Scanner
	out    io.Writer
}

func NewHumanAgent(letter string, in io.Reader, out io.Writer) *HumanAgent {
	return &HumanAgent{letter: letter, in: bufio.NewScanner(in), out: out}
}

func (a *HumanAgent) Letter() string {
	return a.letter
}

func (a *HumanAgent) FindMove(state game.State) (game.Move, error) {
	legal := map[game.Move]bool{}
	for _, move := range state.AvailableMoves() {
		legal[move] = true
	}
	if len(legal) == 0 {
		return 0, fmt.Errorf("human agent %s: no legal move", a.letter)
	}

	for {
		fmt.Fprintf(a.out, "%s's turn. Input move: ", a.letter)
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return 0, fmt.Errorf("human agent %s: %w", a.letter, err)
			}
			return 0, fmt.Errorf("human agent %s: input closed", a.letter)
		}
		value, err := strconv.Atoi(a.in.Text())
		if err != nil || !legal[game.Move(value)] {
			fmt.Fprintln(a.out, "Invalid move. Try again.")
			continue
		}
		return game.Move(value), nil
	}
}
