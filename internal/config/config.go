package config

import (
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Range is an inclusive [min,max] interval.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r Range) validate(name string) error {
	if r.Min > r.Max {
		return errors.Newf("%s: min %d is greater than max %d", name, r.Min, r.Max)
	}
	return nil
}

// SizeTable holds one value per fish size.
type SizeTable[T any] struct {
	Small  T `yaml:"small"`
	Medium T `yaml:"medium"`
	Big    T `yaml:"big"`
}

// ColorTable holds one value per fish color.
type ColorTable[T any] struct {
	Red   T `yaml:"red"`
	Blue  T `yaml:"blue"`
	Green T `yaml:"green"`
}

// Game holds the economy constants.
type Game struct {
	StartingWealth int `yaml:"starting_wealth"`
	// CarryWealth keeps the closing wealth as the next day's opening wealth.
	CarryWealth bool  `yaml:"carry_wealth"`
	Seed        int64 `yaml:"seed"`

	PoleCost SizeTable[int]  `yaml:"pole_cost"`
	BaitCost ColorTable[int] `yaml:"bait_cost"`

	BestBaitWeight  int `yaml:"best_bait_weight"`
	OtherBaitWeight int `yaml:"other_bait_weight"`
	// IncludeBestInBalance also buys the best color's balance share, so it is bought twice.
	IncludeBestInBalance *bool `yaml:"include_best_in_balance"`

	FishValue SizeTable[Range] `yaml:"fish_value"`
	FishCount SizeTable[Range] `yaml:"fish_count"`

	RedPercentage  Range `yaml:"red_percentage"`
	BluePercentage Range `yaml:"blue_percentage"`

	CastingDelayMS Range `yaml:"casting_delay_ms"`
	JudgingDelayMS Range `yaml:"judging_delay_ms"`
	CastGate       *bool `yaml:"cast_gate"`
}

// Config holds all application configuration.
type Config struct {
	Game Game `yaml:"game"`
	Log  struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
		File        string `yaml:"file"`
		MaxSizeMB   int    `yaml:"max_size_mb"`
		MaxBackups  int    `yaml:"max_backups"`
	} `yaml:"log"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Autopilot struct {
		Enabled bool   `yaml:"enabled"`
		Cron    string `yaml:"cron"`
		Days    int    `yaml:"days"`
	} `yaml:"autopilot"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file on top of the defaults, then applies
// environment variable overrides. Keys absent from the file keep their default,
// so explicit zeros and partial tables are honored. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "read config")
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config")
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Game: Game{
			StartingWealth:       100,
			PoleCost:             SizeTable[int]{Small: 5, Medium: 10, Big: 15},
			BaitCost:             ColorTable[int]{Red: 1, Blue: 2, Green: 3},
			BestBaitWeight:       2,
			OtherBaitWeight:      1,
			IncludeBestInBalance: boolPtr(true),
			FishValue: SizeTable[Range]{
				Small:  Range{Min: 1, Max: 5},
				Medium: Range{Min: 5, Max: 10},
				Big:    Range{Min: 10, Max: 15},
			},
			FishCount: SizeTable[Range]{
				Small:  Range{Min: 3, Max: 12},
				Medium: Range{Min: 2, Max: 8},
				Big:    Range{Min: 1, Max: 6},
			},
			RedPercentage:  Range{Min: 20, Max: 50},
			BluePercentage: Range{Min: 25, Max: 60},
			CastingDelayMS: Range{Min: 2000, Max: 3000},
			JudgingDelayMS: Range{Min: 1000, Max: 2000},
			CastGate:       boolPtr(true),
		},
	}
	cfg.Log.Level = "info"
	cfg.Log.MaxSizeMB = 10
	cfg.Log.MaxBackups = 3
	cfg.Autopilot.Cron = "@every 5s"
	cfg.Autopilot.Days = 10
	return cfg
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("FISHING_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "FISHING_SEED")
		}
		c.Game.Seed = seed
	}
	if v := os.Getenv("FISHING_CARRY_WEALTH"); v != "" {
		carry, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "FISHING_CARRY_WEALTH")
		}
		c.Game.CarryWealth = carry
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("AUTOPILOT_CRON"); v != "" {
		c.Autopilot.Cron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	return nil
}

// Validate checks that all ranges and costs are usable.
func (c *Config) Validate() error {
	g := c.Game
	if g.StartingWealth <= 0 {
		return errors.New("game.starting_wealth must be positive")
	}
	for name, v := range map[string]int{
		"game.pole_cost.small":  g.PoleCost.Small,
		"game.pole_cost.medium": g.PoleCost.Medium,
		"game.pole_cost.big":    g.PoleCost.Big,
	} {
		if v < 0 {
			return errors.Newf("%s must not be negative", name)
		}
	}
	for name, v := range map[string]int{
		"game.bait_cost.red":   g.BaitCost.Red,
		"game.bait_cost.blue":  g.BaitCost.Blue,
		"game.bait_cost.green": g.BaitCost.Green,
	} {
		if v <= 0 {
			return errors.Newf("%s must be positive", name)
		}
	}
	if g.OtherBaitWeight <= 0 {
		return errors.New("game.other_bait_weight must be positive")
	}
	if g.BestBaitWeight <= g.OtherBaitWeight {
		return errors.New("game.best_bait_weight must be greater than game.other_bait_weight")
	}

	ranges := []struct {
		name string
		r    Range
	}{
		{"game.fish_value.small", g.FishValue.Small},
		{"game.fish_value.medium", g.FishValue.Medium},
		{"game.fish_value.big", g.FishValue.Big},
		{"game.fish_count.small", g.FishCount.Small},
		{"game.fish_count.medium", g.FishCount.Medium},
		{"game.fish_count.big", g.FishCount.Big},
		{"game.red_percentage", g.RedPercentage},
		{"game.blue_percentage", g.BluePercentage},
		{"game.casting_delay_ms", g.CastingDelayMS},
		{"game.judging_delay_ms", g.JudgingDelayMS},
	}
	for _, rr := range ranges {
		if err := rr.r.validate(rr.name); err != nil {
			return err
		}
		if rr.r.Min < 0 {
			return errors.Newf("%s must not be negative", rr.name)
		}
	}
	if g.RedPercentage.Max > 100 || g.BluePercentage.Max > 100 {
		return errors.New("color percentages must lie within [0,100]")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	if c.Autopilot.Enabled {
		if _, err := cron.ParseStandard(c.Autopilot.Cron); err != nil {
			return errors.Wrap(err, "autopilot.cron")
		}
		if c.Autopilot.Days <= 0 {
			return errors.New("autopilot.days must be positive")
		}
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }
