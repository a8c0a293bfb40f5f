package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"gridgames/experiments/metrics"
	"gridgames/game"
)

// Tie is the result of a game that ends with a full board and no winner.
const Tie = "Tie"

type EngineOption func(e *Engine)

// Engine runs a local game between two agents over the authoritative state.
type Engine struct {
	State     game.State
	agents    map[string]Agent
	collector metrics.Collector
	render    io.Writer
}

// WithCollector records per-move and per-game metrics while the engine runs.
func WithCollector(c metrics.Collector) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.collector = c
		}
	}
}

// WithRenderer prints the board to out after every applied move.
func WithRenderer(out io.Writer) EngineOption {
	return func(e *Engine) {
		e.render = out
	}
}

func Local(state game.State, x, o Agent, options ...EngineOption) *Engine {
	if x.Letter() != game.PlayerX || o.Letter() != game.PlayerO {
		panic("agents must play X and O respectively")
	}

	e := &Engine{
		State:     state,
		agents:    map[string]Agent{game.PlayerX: x, game.PlayerO: o},
		collector: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until a winner or a full board. X moves first.
// Returns "X", "O" or Tie.
func (e *Engine) Run() (string, error) {
	e.collector.Start()
	letter := game.PlayerX

	for e.State.Winner() == "" && e.State.HasEmptySquares() {
		// The engine, not the strategy, measures decision time.
		start := time.Now()
		move, err := e.agents[letter].FindMove(e.State)
		elapsed := time.Since(start)
		if err != nil {
			return "", fmt.Errorf("agent %s failed to move: %w", letter, err)
		}

		ownWins := winningMoves(e.State, letter)
		opponentWins := winningMoves(e.State, game.Opponent(letter))

		if !e.State.ApplyMove(move, letter) {
			return "", fmt.Errorf("agent %s returned illegal move %d", letter, move)
		}
		e.collector.AddMove(letter, int(move), elapsed)

		// One count per turn, regardless of how many winning replies existed
		if len(ownWins) > 0 && !containsMove(ownWins, move) {
			e.collector.AddMissedWin(letter)
		}
		if len(opponentWins) > 0 && containsMove(opponentWins, move) {
			e.collector.AddBlockedWin(letter)
		}

		log.Info().
			Str("player", letter).
			Int("move", int(move)).
			Dur("took", elapsed).
			Msg("move applied")

		if e.render != nil {
			if grid, ok := e.State.(game.Grid); ok {
				fmt.Fprintf(e.render, "%s makes a move to %d\n%s\n", letter, move, Render(grid))
			}
		}

		letter = game.Opponent(letter)
	}

	winner := e.State.Winner()
	if winner == "" {
		winner = Tie
	}
	log.Info().Str("winner", winner).Msg("game over")
	return winner, nil
}

// winningMoves probes every legal move and returns those that win
// immediately for player.
func winningMoves(state game.State, player string) []game.Move {
	wins := []game.Move{}
	for _, move := range state.AvailableMoves() {
		probe := state.Clone()
		if probe.ApplyMove(move, player) && probe.Winner() == player {
			wins = append(wins, move)
		}
	}
	return wins
}

func containsMove(moves []game.Move, move game.Move) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}
	return false
}
