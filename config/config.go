package config

import (
	"errors"
	"fmt"
	"jaguar/communication/redis"
	"jaguar/game"
	"jaguar/meta"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ModePlay       = "play"       // Answer the controller for one side
	ModeSelfPlay   = "selfplay"   // Play agents against each other and store records
	ModeGameMaster = "gamemaster" // Host a game between two players over Redis
)

const (
	TransportRedis = "redis"
	TransportStdio = "stdio"
	TransportTCP   = "tcp"
)

type Config struct {
	Mode      string `mapstructure:"mode"`
	Side      string `mapstructure:"side"`
	Transport string `mapstructure:"transport"`

	Redis struct {
		Addr       string        `mapstructure:"addr"`
		Password   string        `mapstructure:"password"`
		DB         int           `mapstructure:"db"`
		ReceiveKey string        `mapstructure:"receive_key"`
		SendKey    string        `mapstructure:"send_key"`
		Poll       time.Duration `mapstructure:"poll"`
	} `mapstructure:"redis"`

	TCP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"tcp"`

	Search struct {
		Depth int    `mapstructure:"depth"`
		Seed  uint64 `mapstructure:"seed"` // Zero seeds from the clock
	} `mapstructure:"search"`

	History struct {
		Capacity int `mapstructure:"capacity"`
	} `mapstructure:"history"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	SelfPlay struct {
		Experiment  string `mapstructure:"experiment"` // match, depth, throughput or parallelization
		Games       int    `mapstructure:"games"`
		Concurrency int    `mapstructure:"concurrency"`
		MaxTurns    int    `mapstructure:"max_turns"`
		OutDir      string `mapstructure:"out_dir"`
		JaguarDepth int    `mapstructure:"jaguar_depth"` // Zero plays random moves
		DogsDepth   int    `mapstructure:"dogs_depth"`   // Zero plays random moves
	} `mapstructure:"selfplay"`
}

func flagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("jaguar", pflag.ContinueOnError)
	flags.String("config", "", "config file (yaml, toml or json)")
	flags.String("mode", ModePlay, "play, selfplay or gamemaster")
	flags.String("side", "", "side to play: o (jaguar) or c (dogs)")
	flags.String("transport", TransportRedis, "redis, stdio or tcp")

	flags.String("redis.addr", "localhost:6379", "redis address")
	flags.String("redis.password", "", "redis password")
	flags.Int("redis.db", 0, "redis database")
	flags.String("redis.receive_key", "", "list the boards are read from (default tabuleiro_<side>)")
	flags.String("redis.send_key", "", "list the commands are pushed to (default jogada_<side>)")
	flags.Duration("redis.poll", time.Second, "longest single blocking pop")

	flags.String("tcp.addr", "localhost:10001", "controller address")

	flags.Int("search.depth", meta.SEARCH_DEPTH, "minimax depth in plies")
	flags.Uint64("search.seed", 0, "random seed, 0 seeds from the clock")
	flags.Int("history.capacity", meta.HISTORY_CAPACITY, "played positions remembered")
	flags.String("log.level", "info", "log level")

	flags.String("selfplay.experiment", "match", "match, depth, throughput or parallelization")
	flags.Int("selfplay.games", 10, "games per match up")
	flags.Int("selfplay.concurrency", meta.GO_ROUTINES, "games played at once")
	flags.Int("selfplay.max_turns", meta.MAX_TURNS, "turns before a game is drawn")
	flags.String("selfplay.out_dir", "experiments", "directory for the records")
	flags.Int("selfplay.jaguar_depth", meta.SEARCH_DEPTH, "jaguar search depth, 0 plays randomly")
	flags.Int("selfplay.dogs_depth", meta.SEARCH_DEPTH, "dogs search depth, 0 plays randomly")
	return flags
}

// Setup reads the configuration from args, the JAGUAR_ environment and an optional config
// file, in that order of precedence. A positional argument sets the side.
func Setup(args []string) (*Config, error) {
	flags := flagSet()
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("JAGUAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	if flags.NArg() > 0 {
		v.Set("side", flags.Arg(0))
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains([]string{ModePlay, ModeSelfPlay, ModeGameMaster}, c.Mode) {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Mode == ModePlay {
		if !c.PlayerSide().Valid() {
			return fmt.Errorf("side must be o or c, got %q", c.Side)
		}
		if !slices.Contains([]string{TransportRedis, TransportStdio, TransportTCP}, c.Transport) {
			return fmt.Errorf("unknown transport %q", c.Transport)
		}
	}
	if c.Search.Depth < 1 {
		return fmt.Errorf("search depth must be positive, got %d", c.Search.Depth)
	}
	if c.History.Capacity < 1 {
		return fmt.Errorf("history capacity must be positive, got %d", c.History.Capacity)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("bad log level: %w", err)
	}
	if c.Mode == ModeSelfPlay {
		if !slices.Contains([]string{"match", "depth", "throughput", "parallelization"}, c.SelfPlay.Experiment) {
			return fmt.Errorf("unknown experiment %q", c.SelfPlay.Experiment)
		}
		if c.SelfPlay.Games < 1 || c.SelfPlay.Concurrency < 1 || c.SelfPlay.MaxTurns < 1 {
			return errors.New("self-play games, concurrency and max turns must be positive")
		}
		if c.SelfPlay.JaguarDepth < 0 || c.SelfPlay.DogsDepth < 0 {
			return errors.New("self-play depths cannot be negative")
		}
	}
	return nil
}

func (c *Config) PlayerSide() game.Side {
	if len(c.Side) != 1 {
		return 0
	}
	return game.Side(c.Side[0])
}

// RedisKeys returns the configured lists, falling back to the controller's names for the side.
func (c *Config) RedisKeys() (receive, send string) {
	receive, send = redis.Keys(c.Side)
	if c.Redis.ReceiveKey != "" {
		receive = c.Redis.ReceiveKey
	}
	if c.Redis.SendKey != "" {
		send = c.Redis.SendKey
	}
	return receive, send
}
