package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type App struct {
	Log *slog.Logger
}

type Command struct {
	Verbose bool          `help:"Enable debug logging." short:"v"`
	Build   *BuildCommand `cmd:"build" help:"Build the outline of a YAML or Markdown outline file."`
}

func main() {
	command := new(Command)
	ctx := kong.Parse(
		command,
		kong.Name("outline"),
		kong.Description("Document outline builder"),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if command.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	err := ctx.Run(&App{Log: log})
	ctx.FatalIfErrorf(err)
}
