// Package commands contains the kong command implementations for prscrub.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/prscrub/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"prscrub.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Scrub ScrubCmd `cmd:"" default:"withargs" help:"Scrub markdown documents (stdin to stdout by default)"`
	Serve ServeCmd `cmd:"" help:"Start the scrub HTTP service"`
	Watch WatchCmd `cmd:"" help:"Watch a directory and scrub changed markdown files"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads configuration honoring the --config flag; when verbose
// logging is requested on the command line it wins over the config file.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		cfg.Logging.Level = string(config.LogLevelDebug)
	}
	return cfg, nil
}
