package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"gridgames/engine"
	"gridgames/experiments"
	"gridgames/game"
	"gridgames/searcher"
)

func main() {
	mode := flag.String("mode", "demo", "demo or experiment")
	gameName := flag.String("game", "tictactoe", "tictactoe or connect4")
	agentX := flag.String("x", "minimax", "X agent: minimax, mcts, random or human")
	agentO := flag.String("o", "mcts", "O agent: minimax, mcts, random or human")
	depth := flag.Int("depth", 5, "Minimax search depth")
	iterations := flag.Int("iterations", searcher.DefaultIterations, "MCTS iterations per move")
	exploration := flag.Float64("exploration", searcher.DefaultExploration, "MCTS exploration constant")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *mode == "experiment" {
		if err := experiments.RunStrengthExperiment(); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		return
	}

	state, err := newGame(*gameName)
	if err != nil {
		log.Fatal().Err(err).Msg("unknown game")
	}
	x, err := newAgent(game.PlayerX, *agentX, *depth, *iterations, *exploration)
	if err != nil {
		log.Fatal().Err(err).Msg("bad X agent")
	}
	o, err := newAgent(game.PlayerO, *agentO, *depth, *iterations, *exploration)
	if err != nil {
		log.Fatal().Err(err).Msg("bad O agent")
	}

	e := engine.Local(state, x, o, engine.WithRenderer(os.Stdout))
	winner, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}

	if winner == engine.Tie {
		fmt.Println("It's a tie!")
	} else {
		fmt.Printf("%s wins!\n", winner)
	}
}

func newGame(name string) (game.State, error) {
	switch name {
	case "tictactoe":
		return game.NewTicTacToe(), nil
	case "connect4":
		return game.NewConnectFour(), nil
	}
	return nil, fmt.Errorf("unknown game %q", name)
}

func newAgent(letter, kind string, depth, iterations int, exploration float64) (engine.Agent, error) {
	switch kind {
	case "minimax":
		return searcher.NewAlphaBeta(letter, depth)
	case "mcts":
		return searcher.NewMCTS(letter,
			searcher.WithIterations(iterations),
			searcher.WithExploration(exploration))
	case "random":
		return engine.NewRandomAgent(letter, rand.New(rand.NewSource(uint64(time.Now().UnixNano())))), nil
	case "human":
		return engine.NewHumanAgent(letter, os.Stdin, os.Stdout), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", kind)
}
