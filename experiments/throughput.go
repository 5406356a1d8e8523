package experiments

import (
	"context"
	"jaguar/experiments/metrics"
	"jaguar/meta"
)

// RunThroughputExperiment mirrors each search depth against itself so both sides play
// with the same strength, recording how many positions a move costs at every depth.
func RunThroughputExperiment(ctx context.Context, settings Settings) (string, error) {
	configs := []metrics.AgentConfig{}
	for depth := 1; depth <= meta.SEARCH_DEPTH+1; depth++ {
		configs = append(configs, metrics.AgentConfig{
			ID:              depth,
			Depth:           depth,
			Seed:            uint64(depth),
			HistoryCapacity: meta.HISTORY_CAPACITY,
		})
	}

	matchUps := []matchUp{}
	for _, config := range configs {
		matchUps = append(matchUps, matchUp{jaguar: config, dogs: config})
	}

	return runExperiment(ctx, "throughput", configs, matchUps, settings)
}
