// Package commands implements the flipclock CLI commands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/go-drift/flipclock/internal/config"
	"github.com/go-drift/flipclock/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// VersionString formats the version flag output.
func VersionString() string {
	return fmt.Sprintf("flipclock %s (built %s)", Version, BuildTime)
}

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

// CLI definition and global flags.
type CLI struct {
	ConfigFile string           `name:"config" short:"c" help:"Configuration file path" default:"flipclock.yaml" type:"path"`
	EnvFile    string           `name:"env-file" help:"Env file with FLIPCLOCK_* overrides (default .env if present)"`
	TextColor  string           `name:"text-color" help:"Override the text color (#RRGGBB or #AARRGGBB)"`
	TextSize   float64          `name:"text-size" help:"Override the text size in pixels"`
	Verbose    bool             `short:"v" help:"Enable verbose logging"`
	Version    kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render RenderCmd `cmd:"" help:"Render the frames of one transition as PNG files"`
	Watch  WatchCmd  `cmd:"" help:"Run a countdown in the terminal"`
	Config ConfigCmd `cmd:"" help:"Print the resolved configuration"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: c.Verbose})
	return nil
}

// Resolve loads the config file and env overrides, then applies flag
// overrides on top.
func (c *CLI) Resolve() (*config.Resolved, error) {
	resolved, err := config.Load(c.ConfigFile, c.EnvFile, c.applyFlags)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return resolved, nil
}

func (c *CLI) applyFlags(cfg *config.Config) {
	if c.TextColor != "" {
		cfg.Style.TextColor = c.TextColor
	}
	if c.TextSize != 0 {
		cfg.Style.TextSize = c.TextSize
	}
}
