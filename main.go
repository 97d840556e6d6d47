package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/traverse/config"
)

var CLI struct {
	Debug       bool   `help:"Whether to enable debug logging."`
	ConfigDir   string `help:"Directory searched for traverse.yaml." default:"." type:"path"`
	Level       string `help:"Level file in levels/." short:"l"`
	Script      string `help:"Drive the player from a tengo script instead of the keyboard." short:"s"`
	BaseMonitor bool   `help:"Use the base monitor instead of the primary one." short:"m"`
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	kong.Parse(&CLI,
		kong.Name("traverse"),
		kong.Description("Interactive viewer for the traverse player controller."),
		kong.UsageOnError())

	if err := config.Load(CLI.ConfigDir); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if CLI.Level != "" {
		config.Set("level", CLI.Level)
	}
	if CLI.Script != "" {
		config.Set("script", CLI.Script)
	}
	settings, err := config.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if CLI.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if CLI.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetTPS(settings.TickRate)

	game, err := NewGame(settings, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
