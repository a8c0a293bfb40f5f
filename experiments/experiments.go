package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"gridgames/engine"
	"gridgames/experiments/metrics"
	"gridgames/game"
	"gridgames/searcher"
)

const NumGames = 30 // Per matchup

// Agent kinds understood by the config factory.
const (
	KindMinimax = "minimax"
	KindMCTS    = "mcts"
	KindRandom  = "random"
)

var strengthConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: KindMinimax, MaxDepth: 3},
	{ID: 2, Kind: KindMinimax, MaxDepth: 5},
	{ID: 3, Kind: KindMCTS, Iterations: 500, Exploration: searcher.DefaultExploration},
	{ID: 4, Kind: KindMCTS, Iterations: searcher.DefaultIterations, Exploration: searcher.DefaultExploration},
	{ID: 5, Kind: KindRandom},
}

// RunStrengthExperiment plays every strategy configuration against every
// other on both games and stores the results as CSV.
func RunStrengthExperiment() error {
	matchUps := [][2]metrics.AgentConfig{}
	for i, config1 := range strengthConfigs {
		for _, config2 := range strengthConfigs[i+1:] {
			matchUps = append(matchUps, [2]metrics.AgentConfig{config1, config2})
		}
	}

	return runExperiment("strength", strengthConfigs, matchUps)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) error {
	start := time.Now()
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		configX := matchup[0]
		configO := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agentX=%+v and agentO=%+v...",
			mi+1, len(matchUps), configX, configO)

		for _, gameName := range []string{"tictactoe", "connect4"} {
			for i := 0; i < NumGames; i++ {
				winner, gameMetric, moveMetrics, err := runGame(gameName, configX, configO)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}

				count++
				gameRecords = append(gameRecords, metrics.GameRecord{
					ID:         count,
					Game:       gameName,
					AgentX:     configX.ID,
					AgentO:     configO.ID,
					GameMetric: gameMetric,
				})
				for _, mm := range moveMetrics {
					moveRecords = append(moveRecords, metrics.MoveRecord{
						Game:       count,
						MoveMetric: mm,
					})
				}

				log.Info().Msgf("completed matchup %d of %d %s game %d with winner: %s",
					mi+1, len(matchUps), gameName, i+1, winner)
			}
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSetup(metrics.Setup{
		Name:      name,
		NumGames:  NumGames,
		StartTime: start,
		EndTime:   time.Now(),
		Duration:  time.Since(start),
	}); err != nil {
		return fmt.Errorf("failed to store setup: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}

	return nil
}

func runGame(gameName string, configX, configO metrics.AgentConfig) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	state, err := newGame(gameName)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	agentX, err := newAgent(game.PlayerX, configX)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	agentO, err := newAgent(game.PlayerO, configO)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	collector := metrics.NewCollector()
	e := engine.Local(state, agentX, agentO, engine.WithCollector(collector))
	winner, err := e.Run()
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	gameMetric, moveMetrics := collector.Complete(winner)
	return winner, gameMetric, moveMetrics, nil
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

func newAgent(letter string, config metrics.AgentConfig) (engine.Agent, error) {
	switch config.Kind {
	case KindMinimax:
		return searcher.NewAlphaBeta(letter, config.MaxDepth)
	case KindMCTS:
		return searcher.NewMCTS(letter,
			searcher.WithIterations(config.Iterations),
			searcher.WithExploration(config.Exploration))
	case KindRandom:
		return engine.NewRandomAgent(letter, rand.New(rand.NewSource(uint64(time.Now().UnixNano())))), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
}
