package main

import (
	"context"
	"fmt"
	"jaguar/communication"
	"jaguar/communication/client"
	"jaguar/communication/redis"
	"jaguar/config"
	"jaguar/experiments"
	"jaguar/experiments/metrics"
	"jaguar/game"
	"jaguar/gamemaster"
	"jaguar/player"
	"jaguar/searcher"
	"jaguar/searcher/agent"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Setup(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Stdout may carry the game's messages
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	level, _ := zerolog.ParseLevel(cfg.Log.Level)
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case config.ModePlay:
		err = play(ctx, cfg)
	case config.ModeSelfPlay:
		err = selfPlay(ctx, cfg)
	case config.ModeGameMaster:
		err = hostGame(ctx, cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", cfg.Mode)
	}
}

func play(ctx context.Context, cfg *config.Config) error {
	transport, err := dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer transport.Close()

	history := game.NewHistory(cfg.History.Capacity)
	a := agent.NewEvaluationAgent(history, searchOptions(cfg, cfg.Search.Depth)...)
	return player.NewPlayer(cfg.PlayerSide(), transport, a).Run(ctx)
}

func dial(ctx context.Context, cfg *config.Config) (communication.Transport, error) {
	switch cfg.Transport {
	case config.TransportStdio:
		return client.NewStream(os.Stdin, os.Stdout), nil
	case config.TransportTCP:
		stream, err := client.Dial(ctx, cfg.TCP.Addr)
		if err != nil {
			return nil, err
		}
		return stream, nil
	default:
		receive, send := cfg.RedisKeys()
		transport, err := redis.Dial(ctx, redisOptions(cfg, receive, send))
		if err != nil {
			return nil, err
		}
		return transport, nil
	}
}

func redisOptions(cfg *config.Config, receive, send string) redis.Options {
	return redis.Options{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		ReceiveKey: receive,
		SendKey:    send,
		Poll:       cfg.Redis.Poll,
	}
}

func searchOptions(cfg *config.Config, depth int) []searcher.Option {
	options := []searcher.Option{searcher.WithDepth(depth), searcher.WithMetrics()}
	if cfg.Search.Seed != 0 {
		options = append(options, searcher.WithSeed(cfg.Search.Seed))
	}
	return options
}

func selfPlay(ctx context.Context, cfg *config.Config) error {
	settings := experiments.Settings{
		OutDir:      cfg.SelfPlay.OutDir,
		Games:       cfg.SelfPlay.Games,
		Concurrency: cfg.SelfPlay.Concurrency,
		MaxTurns:    cfg.SelfPlay.MaxTurns,
	}

	var dir string
	var err error
	switch cfg.SelfPlay.Experiment {
	case "depth":
		dir, err = experiments.RunDepthExperiment(ctx, settings)
	case "throughput":
		dir, err = experiments.RunThroughputExperiment(ctx, settings)
	case "parallelization":
		dir, err = experiments.RunParallelizationExperiment(ctx, settings)
	default:
		seed := cfg.Search.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		jaguar := agentConfig(1, cfg.SelfPlay.JaguarDepth, seed, cfg.History.Capacity)
		dogs := agentConfig(2, cfg.SelfPlay.DogsDepth, seed, cfg.History.Capacity)
		dir, err = experiments.RunMatch(ctx, "match", jaguar, dogs, settings)
	}
	if err != nil {
		return err
	}
	log.Info().Msgf("records stored in %s", dir)
	return nil
}

func agentConfig(id, depth int, seed uint64, capacity int) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:              id,
		Depth:           depth,
		Random:          depth == 0,
		Seed:            seed,
		HistoryCapacity: capacity,
	}
}

// hostGame referees one game between two players connected to the same Redis, using the
// player's lists in reverse.
func hostGame(ctx context.Context, cfg *config.Config) error {
	transports := map[game.Side]communication.Transport{}
	for _, side := range []game.Side{game.JaguarSide, game.DogSide} {
		boards, commands := redis.Keys(side.String())
		transport, err := redis.Dial(ctx, redisOptions(cfg, commands, boards))
		if err != nil {
			return err
		}
		defer transport.Close()
		transports[side] = transport
	}

	engine := gamemaster.NewLocalEngine()
	winner, err := gamemaster.NewGameMaster(engine, transports[game.JaguarSide], transports[game.DogSide]).RunGame(ctx)
	if err != nil {
		return err
	}
	log.Info().Msgf("winner: %v", winner)
	return nil
}
