package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the optional settings file looked up in the config directory.
const FileName = "traverse.yaml"

// Settings is the runtime configuration shared by the viewer and the
// headless simulator.
type Settings struct {
	LogLevel string `mapstructure:"logLevel"`
	TickRate int    `mapstructure:"tickRate"`

	Level  string `mapstructure:"level"`
	Player string `mapstructure:"player"`
	Camera string `mapstructure:"camera"`
	Script string `mapstructure:"script"`

	Physics PhysicsSettings `mapstructure:"physics"`
	Window  WindowSettings  `mapstructure:"window"`

	WatchPrefabs bool `mapstructure:"watchPrefabs"`
}

type PhysicsSettings struct {
	Gravity     float64 `mapstructure:"gravity"`
	GroundDrag  float64 `mapstructure:"groundDrag"`
	AirDrag     float64 `mapstructure:"airDrag"`
	KillPlane   float64 `mapstructure:"killPlane"`
	MaxFallRate float64 `mapstructure:"maxFallRate"`
	StepHeight  float64 `mapstructure:"stepHeight"`
}

type WindowSettings struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// Load sets defaults, then layers traverse.yaml from configDir (if present)
// and TRAVERSE_* environment variables over them.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("tickRate", 60)

	viper.SetDefault("level", "playground.yaml")
	viper.SetDefault("player", "player.yaml")
	viper.SetDefault("camera", "camera.yaml")
	viper.SetDefault("script", "")

	viper.SetDefault("physics.gravity", -9.81)
	viper.SetDefault("physics.groundDrag", 2.0)
	viper.SetDefault("physics.airDrag", 1.0)
	viper.SetDefault("physics.killPlane", -30.0)
	viper.SetDefault("physics.maxFallRate", 50.0)
	viper.SetDefault("physics.stepHeight", 0.35)

	viper.SetDefault("window.width", 960)
	viper.SetDefault("window.height", 540)
	viper.SetDefault("window.title", "traverse")

	viper.SetDefault("watchPrefabs", true)

	viper.SetEnvPrefix("TRAVERSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
	viper.SetConfigType("yaml")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: read %s: %w", FileName, err)
		}
	}
	return nil
}

// Get decodes the loaded configuration.
func Get() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: decode: %w", err)
	}
	if s.TickRate <= 0 {
		return Settings{}, fmt.Errorf("config: tickRate must be positive, got %d", s.TickRate)
	}
	return s, nil
}

// Set overrides a key, e.g. from a command line flag.
func Set(key string, value any) {
	viper.Set(key, value)
}

// ConfigFile is the path of the file that was read, or "".
func ConfigFile() string {
	return viper.ConfigFileUsed()
}

// TickSeconds is the fixed simulation step.
func (s Settings) TickSeconds() float64 {
	return 1 / float64(s.TickRate)
}
