package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/traverse/config"
)

var CLI struct {
	Debug     bool    `help:"Whether to enable debug logging."`
	ConfigDir string  `help:"Directory searched for traverse.yaml." default:"." type:"path"`
	Level     string  `help:"Level file in levels/." short:"l"`
	Player    string  `help:"Player prefab in prefabs/."`
	Script    string  `help:"Tengo input script in prefabs/scripts/." short:"s" default:"demo"`
	Duration  float64 `help:"Simulated seconds to run when the script does not finish." default:"30"`
	Report    int     `help:"Log the player state every N frames, 0 to disable." default:"60"`
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	kong.Parse(&CLI,
		kong.Name("sim"),
		kong.Description("Run a traverse level headless, driven by an input script."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if err := config.Load(CLI.ConfigDir); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if CLI.Level != "" {
		config.Set("level", CLI.Level)
	}
	if CLI.Player != "" {
		config.Set("player", CLI.Player)
	}
	config.Set("script", CLI.Script)

	settings, err := config.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		log.Warn().Str("level", settings.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	if CLI.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if file := config.ConfigFile(); file != "" {
		log.Debug().Str("file", file).Msg("config loaded")
	}

	summary, err := simulate(settings, CLI.Duration, CLI.Report, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
	summary.log(log.Logger)
}
