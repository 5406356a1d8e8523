package experiments

import (
	"context"
	"fmt"
	"jaguar/engine"
	"jaguar/experiments/metrics"
	"jaguar/game"
	"jaguar/gamemaster"
	"jaguar/meta"
	"jaguar/searcher"
	"jaguar/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const NumGames = 20 // Per match up

type Settings struct {
	OutDir      string
	Games       int // Per match up
	Concurrency int // Games played at once
	MaxTurns    int
}

func DefaultSettings() Settings {
	return Settings{
		OutDir:      "experiments",
		Games:       NumGames,
		Concurrency: meta.GO_ROUTINES,
		MaxTurns:    meta.MAX_TURNS,
	}
}

type matchUp struct {
	jaguar metrics.AgentConfig
	dogs   metrics.AgentConfig
}

// RunMatch plays settings.Games games between the jaguar and dogs configs and returns the
// directory holding the results.
func RunMatch(ctx context.Context, name string, jaguar, dogs metrics.AgentConfig, settings Settings) (string, error) {
	configs := []metrics.AgentConfig{jaguar}
	if dogs.ID != jaguar.ID {
		configs = append(configs, dogs)
	}
	return runExperiment(ctx, name, configs, []matchUp{{jaguar: jaguar, dogs: dogs}}, settings)
}

// RunDepthExperiment pairs minimax agents of growing depth against a random baseline,
// once on each side.
func RunDepthExperiment(ctx context.Context, settings Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Random: true, Seed: 1}
	depthConfigs := []metrics.AgentConfig{
		{ID: 1, Depth: 1, Seed: 1, HistoryCapacity: meta.HISTORY_CAPACITY},
		{ID: 2, Depth: 2, Seed: 1, HistoryCapacity: meta.HISTORY_CAPACITY},
		{ID: 3, Depth: 3, Seed: 1, HistoryCapacity: meta.HISTORY_CAPACITY},
		{ID: 4, Depth: meta.SEARCH_DEPTH, Seed: 1, HistoryCapacity: meta.HISTORY_CAPACITY},
	}

	matchUps := []matchUp{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps,
			matchUp{jaguar: config, dogs: baseline},
			matchUp{jaguar: baseline, dogs: config},
		)
	}

	return runExperiment(ctx, "depth", append(depthConfigs, baseline), matchUps, settings)
}

// RunParallelizationExperiment pairs MCTS agents with a growing number of goroutines against
// a minimax baseline, once on each side. Every agent gets the same number of episodes.
func RunParallelizationExperiment(ctx context.Context, settings Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 2, Seed: 1, HistoryCapacity: meta.HISTORY_CAPACITY}
	parallelConfigs := []metrics.AgentConfig{
		{ID: 1, Goroutines: 1, Episodes: 500, Seed: 1},
		{ID: 2, Goroutines: 2, Episodes: 500, Seed: 1},
		{ID: 3, Goroutines: 4, Episodes: 500, Seed: 1},
		{ID: 4, Goroutines: meta.GO_ROUTINES, Episodes: 500, Seed: 1},
	}

	matchUps := []matchUp{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps,
			matchUp{jaguar: config, dogs: baseline},
			matchUp{jaguar: baseline, dogs: config},
		)
	}

	return runExperiment(ctx, "parallelization", append(parallelConfigs, baseline), matchUps, settings)
}

func runExperiment(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps []matchUp, settings Settings) (string, error) {
	if settings.Games < 1 {
		return "", fmt.Errorf("need at least one game per match up, got %d", settings.Games)
	}
	total := len(matchUps) * settings.Games
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)

	log.Info().Msgf("starting %s experiment with %d games...", name, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(settings.Concurrency, 1))
	for mi, m := range matchUps {
		for i := 0; i < settings.Games; i++ {
			index := mi*settings.Games + i
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				id := index + 1
				winner, gameMetric, moveMetrics := runGame(m, uint64(id), settings.MaxTurns)
				gameRecords[index] = metrics.GameRecord{
					ID:         id,
					Jaguar:     m.jaguar.ID,
					Dogs:       m.dogs.ID,
					GameMetric: gameMetric,
				}
				for _, mm := range moveMetrics {
					moveRecords[index] = append(moveRecords[index], metrics.MoveRecord{
						Game:       id,
						MoveMetric: mm,
					})
				}

				log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %v", mi+1, len(matchUps), i+1, settings.Games, winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("%s experiment interrupted: %w", name, err)
	}

	log.Info().Msgf("completed %s experiment", name)

	return store(settings.OutDir, name, configs, gameRecords, moveRecords)
}

func store(root, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords [][]metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	var moves []metrics.MoveRecord
	for _, records := range moveRecords {
		moves = append(moves, records...)
	}
	err = writer.WriteMoveRecords(moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(m matchUp, seed uint64, maxTurns int) (game.Side, metrics.GameMetric, []metrics.MoveMetric) {
	e := engine.LocalEngine(createAgent(m.jaguar, seed), createAgent(m.dogs, seed), gamemaster.WithMaxTurns(maxTurns))
	return e.Run()
}

// createAgent builds the agent described by config. seed varies the games of a match up.
func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	seed += config.Seed
	if config.Random {
		return agent.NewRandomAgent(rand.New(rand.NewSource(seed)))
	}
	if config.Episodes > 0 {
		return agent.NewMCTSAgent(config.Goroutines, searcher.WithEpisodes(config.Episodes), searcher.WithPlayoutSeed(seed))
	}

	options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}

	capacity := config.HistoryCapacity
	if capacity < 1 {
		capacity = meta.HISTORY_CAPACITY
	}
	return agent.NewEvaluationAgent(game.NewHistory(capacity), options...)
}
