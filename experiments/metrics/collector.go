package metrics

import (
	"time"
)

// AgentConfig identifies one strategy configuration in an experiment.
type AgentConfig struct {
	ID          int
	Kind        string // "minimax", "mcts" or "random"
	MaxDepth    int
	Iterations  int
	Exploration float64
}

// MoveMetric is one decision made during a game.
type MoveMetric struct {
	Step     int
	Player   string
	Move     int
	Duration time.Duration
}

// GameMetric summarizes one finished game.
type GameMetric struct {
	Winner      string // "X", "O" or "Tie"
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalMoves  int
	BlockedWins map[string]int // per letter: chosen move blocked an opponent win
	MissedWins  map[string]int // per letter: an own winning move was available but not taken
}

// Collector accumulates move records while the engine runs a game.
type Collector interface {
	Start()
	AddMove(player string, move int, duration time.Duration)
	AddBlockedWin(player string)
	AddMissedWin(player string)
	Complete(winner string) (GameMetric, []MoveMetric)
}

type collector struct {
	startTime time.Time
	moves     []MoveMetric
	blocked   map[string]int
	missed    map[string]int
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.moves = nil
	c.blocked = map[string]int{}
	c.missed = map[string]int{}
}

func (c *collector) AddMove(player string, move int, duration time.Duration) {
	c.moves = append(c.moves, MoveMetric{
		Step:     len(c.moves) + 1,
		Player:   player,
		Move:     move,
		Duration: duration,
	})
}

func (c *collector) AddBlockedWin(player string) {
	c.blocked[player]++
}

func (c *collector) AddMissedWin(player string) {
	c.missed[player]++
}

func (c *collector) Complete(winner string) (GameMetric, []MoveMetric) {
	end := time.Now()
	return GameMetric{
		Winner:      winner,
		StartTime:   c.startTime,
		EndTime:     end,
		Duration:    end.Sub(c.startTime),
		TotalMoves:  len(c.moves),
		BlockedWins: c.blocked,
		MissedWins:  c.missed,
	}, c.moves
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start()                                                {}
func (c *dummyCollector) AddMove(player string, move int, duration time.Duration) {}
func (c *dummyCollector) AddBlockedWin(player string)                           {}
func (c *dummyCollector) AddMissedWin(player string)                            {}
func (c *dummyCollector) Complete(winner string) (GameMetric, []MoveMetric) {
	return GameMetric{Winner: winner}, nil
}
