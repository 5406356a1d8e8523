package metrics

import (
	"encoding/csv"
	"fmt"
	"jaguar/game"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one player of an experiment match-up.
type AgentConfig struct {
	ID              int
	Depth           int  // Minimax depth, ignored by random agents
	Random          bool // Plays uniformly random legal moves
	Seed            uint64
	HistoryCapacity int
	Episodes        int // MCTS episodes per move, zero for minimax
	Goroutines      int // MCTS goroutines
}

type GameRecord struct {
	ID     int
	Jaguar int // AgentConfig.ID
	Dogs   int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the experiment's CSV files.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "depth", "random", "seed", "history_capacity", "episodes", "goroutines"}
	return w.write("agent_configs.csv", "agent configs", header, len(configs), func(i int) []string {
		config := configs[i]
		return []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Depth),
			strconv.FormatBool(config.Random),
			strconv.FormatUint(config.Seed, 10),
			strconv.Itoa(config.HistoryCapacity),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Goroutines),
		}
	})
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "game_id", "jaguar", "dogs", "winner", "total_moves", "dogs_left", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", "game records", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.ID),
			record.GameMetric.ID,
			strconv.Itoa(record.Jaguar),
			strconv.Itoa(record.Dogs),
			winnerName(record.Winner),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.DogsLeft),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
	})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "side", "move", "depth", "duration", "nodes", "leaves", "cutoffs", "cycles", "terminals", "value"}
	return w.write("move_records.csv", "move records", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Side.String(),
			record.Move,
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.Cycles),
			strconv.Itoa(record.Terminals),
			strconv.FormatFloat(record.Value, 'f', 2, 64),
		}
	})
}

func (w *Writer) write(file, what string, header []string, rows int, row func(i int) []string) error {
	// Create a file
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}

	// Write each row
	for i := 0; i < rows; i++ {
		err = writer.Write(row(i))
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", what, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", what, err)
	}
	return nil
}

func winnerName(winner game.Side) string {
	if winner == 0 {
		return "draw"
	}
	return winner.String()
}
