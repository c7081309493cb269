// Package config loads settings from defaults, an optional lanerush.json
// and LANERUSH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"lanerush/internal/game"
)

const (
	FileName  = "lanerush"
	EnvPrefix = "LANERUSH"
)

// Config is the whole runtime configuration.
type Config struct {
	LogLevel string `json:"logLevel" mapstructure:"logLevel"`
	LogFile  string `json:"logFile" mapstructure:"logFile"`
	Seed     uint64 `json:"seed" mapstructure:"seed"` // 0 picks one at startup

	Window  WindowConfig  `json:"window" mapstructure:"window"`
	Keys    KeysConfig    `json:"keys" mapstructure:"keys"`
	Sim     SimConfig     `json:"sim" mapstructure:"sim"`
	Audio   AudioConfig   `json:"audio" mapstructure:"audio"`
	Storage StorageConfig `json:"storage" mapstructure:"storage"`
	Debug   DebugConfig   `json:"debug" mapstructure:"debug"`
	Sentry  SentryConfig  `json:"sentry" mapstructure:"sentry"`
}

type WindowConfig struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
	VSync  bool   `json:"vsync" mapstructure:"vsync"`
}

// KeysConfig names the key bound to each control. Names are lower-case
// letters or one of space, enter, escape, up, down, left, right.
type KeysConfig struct {
	Forward  string `json:"forward" mapstructure:"forward"`
	Backward string `json:"backward" mapstructure:"backward"`
	Left     string `json:"left" mapstructure:"left"`
	Right    string `json:"right" mapstructure:"right"`
	Restart  string `json:"restart" mapstructure:"restart"`
}

// SimConfig mirrors game.Params in flat, file-friendly form.
type SimConfig struct {
	LateralMin            float64       `json:"lateralMin" mapstructure:"lateralMin"`
	LateralMax            float64       `json:"lateralMax" mapstructure:"lateralMax"`
	ForwardBound          float64       `json:"forwardBound" mapstructure:"forwardBound"`
	BackwardBound         float64       `json:"backwardBound" mapstructure:"backwardBound"`
	UserStartZ            float64       `json:"userStartZ" mapstructure:"userStartZ"`
	MoveSpeed             float64       `json:"moveSpeed" mapstructure:"moveSpeed"`
	StrafeStep            float64       `json:"strafeStep" mapstructure:"strafeStep"`
	TurnRate              float64       `json:"turnRate" mapstructure:"turnRate"`
	TurnFactor            float64       `json:"turnFactor" mapstructure:"turnFactor"`
	CameraOffsetY         float64       `json:"cameraOffsetY" mapstructure:"cameraOffsetY"`
	CameraOffsetZ         float64       `json:"cameraOffsetZ" mapstructure:"cameraOffsetZ"`
	SpawnDistance         float64       `json:"spawnDistance" mapstructure:"spawnDistance"`
	InitialBurst          int           `json:"initialBurst" mapstructure:"initialBurst"`
	SpawnInterval         time.Duration `json:"spawnInterval" mapstructure:"spawnInterval"`
	DriftProbability      float64       `json:"driftProbability" mapstructure:"driftProbability"`
	DriftStep             float64       `json:"driftStep" mapstructure:"driftStep"`
	CollisionLateral      float64       `json:"collisionLateral" mapstructure:"collisionLateral"`
	CollisionLongitudinal float64       `json:"collisionLongitudinal" mapstructure:"collisionLongitudinal"`
	CullMargin            float64       `json:"cullMargin" mapstructure:"cullMargin"`
	GameOverDelay         time.Duration `json:"gameOverDelay" mapstructure:"gameOverDelay"`
	Countdown             int           `json:"countdown" mapstructure:"countdown"`
	CountdownStep         time.Duration `json:"countdownStep" mapstructure:"countdownStep"`
}

type AudioConfig struct {
	Enabled      bool    `json:"enabled" mapstructure:"enabled"`
	SfxVolume    float64 `json:"sfxVolume" mapstructure:"sfxVolume"`
	EngineVolume float64 `json:"engineVolume" mapstructure:"engineVolume"`
}

// StorageConfig controls the run history database. An empty path keeps
// it in memory.
type StorageConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

type DebugConfig struct {
	Statsview     bool   `json:"statsview" mapstructure:"statsview"`
	StatsviewAddr string `json:"statsviewAddr" mapstructure:"statsviewAddr"`
}

type SentryConfig struct {
	DSN         string `json:"dsn" mapstructure:"dsn"`
	Environment string `json:"environment" mapstructure:"environment"`
}

func setDefaults(v *viper.Viper) {
	d := game.DefaultParams()

	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("seed", 0)

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Lane Rush")
	v.SetDefault("window.vsync", true)

	v.SetDefault("keys.forward", "w")
	v.SetDefault("keys.backward", "s")
	v.SetDefault("keys.left", "a")
	v.SetDefault("keys.right", "d")
	v.SetDefault("keys.restart", "space")

	v.SetDefault("sim.lateralMin", d.LateralMin)
	v.SetDefault("sim.lateralMax", d.LateralMax)
	v.SetDefault("sim.forwardBound", d.ForwardBound)
	v.SetDefault("sim.backwardBound", d.BackwardBound)
	v.SetDefault("sim.userStartZ", d.UserStart.Z)
	v.SetDefault("sim.moveSpeed", d.MoveSpeed)
	v.SetDefault("sim.strafeStep", d.StrafeStep)
	v.SetDefault("sim.turnRate", d.TurnRate)
	v.SetDefault("sim.turnFactor", d.TurnFactor)
	v.SetDefault("sim.cameraOffsetY", d.CameraOffset.Y)
	v.SetDefault("sim.cameraOffsetZ", d.CameraOffset.Z)
	v.SetDefault("sim.spawnDistance", d.SpawnDistance)
	v.SetDefault("sim.initialBurst", d.InitialBurst)
	v.SetDefault("sim.spawnInterval", d.SpawnInterval.String())
	v.SetDefault("sim.driftProbability", d.DriftProbability)
	v.SetDefault("sim.driftStep", d.DriftStep)
	v.SetDefault("sim.collisionLateral", d.CollisionLateral)
	v.SetDefault("sim.collisionLongitudinal", d.CollisionLongitudinal)
	v.SetDefault("sim.cullMargin", d.CullMargin)
	v.SetDefault("sim.gameOverDelay", d.GameOverDelay.String())
	v.SetDefault("sim.countdown", d.Countdown)
	v.SetDefault("sim.countdownStep", d.CountdownStep.String())

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.sfxVolume", 0.35)
	v.SetDefault("audio.engineVolume", 0.15)

	v.SetDefault("storage.enabled", true)
	v.SetDefault("storage.path", "lanerush.db")

	v.SetDefault("debug.statsview", false)
	v.SetDefault("debug.statsviewAddr", "localhost:18066")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
}

// Load reads lanerush.json from configDir, if present, on top of the
// defaults and applies LANERUSH_* environment overrides.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName(FileName)
		v.SetConfigType("json")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Params converts the sim section into simulation parameters.
func (c *Config) Params() game.Params {
	d := game.DefaultParams()
	s := c.Sim
	d.LateralMin = s.LateralMin
	d.LateralMax = s.LateralMax
	d.ForwardBound = s.ForwardBound
	d.BackwardBound = s.BackwardBound
	d.UserStart.Z = s.UserStartZ
	d.MoveSpeed = s.MoveSpeed
	d.StrafeStep = s.StrafeStep
	d.TurnRate = s.TurnRate
	d.TurnFactor = s.TurnFactor
	d.CameraOffset.Y = s.CameraOffsetY
	d.CameraOffset.Z = s.CameraOffsetZ
	d.SpawnDistance = s.SpawnDistance
	d.InitialBurst = s.InitialBurst
	d.SpawnInterval = s.SpawnInterval
	d.DriftProbability = s.DriftProbability
	d.DriftStep = s.DriftStep
	d.CollisionLateral = s.CollisionLateral
	d.CollisionLongitudinal = s.CollisionLongitudinal
	d.CullMargin = s.CullMargin
	d.GameOverDelay = s.GameOverDelay
	d.Countdown = s.Countdown
	d.CountdownStep = s.CountdownStep
	return d
}

// Bindings returns the driving controls keyed by key name.
func (c *Config) Bindings() game.Bindings {
	return game.Bindings{
		strings.ToLower(c.Keys.Forward):  game.ControlForward,
		strings.ToLower(c.Keys.Backward): game.ControlBackward,
		strings.ToLower(c.Keys.Left):     game.ControlLeft,
		strings.ToLower(c.Keys.Right):    game.ControlRight,
	}
}

func (c *Config) Validate() error {
	var errs []error
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("sim: %w", err))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if !validLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	for name, vol := range map[string]float64{"sfxVolume": c.Audio.SfxVolume, "engineVolume": c.Audio.EngineVolume} {
		if vol < 0 || vol > 1 {
			errs = append(errs, fmt.Errorf("audio.%s %v outside [0,1]", name, vol))
		}
	}

	seen := make(map[string]string)
	for _, k := range []struct{ name, key string }{
		{"forward", c.Keys.Forward},
		{"backward", c.Keys.Backward},
		{"left", c.Keys.Left},
		{"right", c.Keys.Right},
		{"restart", c.Keys.Restart},
	} {
		key := strings.ToLower(k.key)
		if key == "" {
			errs = append(errs, fmt.Errorf("keys.%s is empty", k.name))
			continue
		}
		if other, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("keys.%s and keys.%s both use %q", other, k.name, key))
			continue
		}
		seen[key] = k.name
	}
	return errors.Join(errs...)
}

func validLevel(s string) bool {
	switch strings.ToUpper(s) {
	case "TRACE", "DEBUG", "INFO", "WARN", "ERROR":
		return true
	}
	return false
}
