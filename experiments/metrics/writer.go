package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GameRecord ties a finished game to the two agent configs that played it.
type GameRecord struct {
	ID     int
	Game   string // "tictactoe" or "connect4"
	AgentX int    // AgentConfig.ID
	AgentO int    // AgentConfig.ID
	GameMetric
}

// MoveRecord ties a move to its game.
type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Setup is the experiment metadata stored next to the CSV files.
type Setup struct {
	Name      string        `json:"name"`
	NumGames  int           `json:"numGames"` // per matchup
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates a results directory named by the experiment and the
// current timestamp.
func NewWriter(name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("results", name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: baseDir}, nil
}

// NewWriterAt writes into an existing directory, for tests.
func NewWriterAt(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

func (w *Writer) WriteSetup(setup Setup) error {
	path := filepath.Join(w.baseDir, "setup.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	path := filepath.Join(w.baseDir, "agent_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create agent configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "kind", "max_depth", "iterations", "exploration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write agent configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.MaxDepth),
			strconv.Itoa(config.Iterations),
			strconv.FormatFloat(config.Exploration, 'g', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write agent config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"id", "game", "agent_x", "agent_o", "winner", "total_moves",
		"blocked_x", "blocked_o", "missed_x", "missed_o",
		"start_time", "end_time", "duration",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			record.Game,
			strconv.Itoa(record.AgentX),
			strconv.Itoa(record.AgentO),
			record.Winner,
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.BlockedWins["X"]),
			strconv.Itoa(record.BlockedWins["O"]),
			strconv.Itoa(record.MissedWins["X"]),
			strconv.Itoa(record.MissedWins["O"]),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "step", "player", "move", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			strconv.Itoa(record.Move),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	return nil
}
