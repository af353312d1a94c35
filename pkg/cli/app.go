package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mchmarny/gradepoint/pkg/config"
	"github.com/mchmarny/gradepoint/pkg/logging"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	appConfigKey = "app-config"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml] (optional, default: $GRADEPOINT_FORMAT or json)",
	}

	fileFlag = &cli.StringSliceFlag{
		Name:      "file",
		Aliases:   []string{"f"},
		Usage:     "Path or http(s) URL of a gradebook file, repeatable (optional, default: $GRADEPOINT_GRADEBOOK or $HOME/.gradepoint/gradebook.yaml)",
		TakesFile: true,
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefaultCLILogger("info")

	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Settings *config.Settings
	Format   string
	Debug    bool
}

func getConfig(cmd *cli.Command) *appConfig {
	if cfg, ok := cmd.Root().Metadata[appConfigKey].(*appConfig); ok {
		return cfg
	}
	return &appConfig{
		Settings: &config.Settings{LogLevel: "info", Format: config.FormatJSON, Concurrency: 1},
		Format:   config.FormatJSON,
	}
}

func newApp(w, errW io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  config.AppName,
		Version:               fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Usage:                 "Weighted and point-based course grades, letters and GPA",
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Writer:                w,
		ErrWriter:             errW,
		Flags: []cli.Flag{
			debugFlag,
			formatFlag,
			fileFlag,
		},
		Commands: []*cli.Command{
			reportCmd,
			gpaCmd,
			resolveCmd,
			scaleCmd,
			initCmd,
			tokenCmd,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			s, err := config.LoadSettings()
			if err != nil {
				return ctx, fmt.Errorf("loading settings: %w", err)
			}

			debug := cmd.Bool(debugFlag.Name)
			initLogging(errW, s, debug)

			format := s.Format
			if f := cmd.String(formatFlag.Name); f != "" {
				format = config.NormalizeFormat(f)
			}

			if cmd.Metadata == nil {
				cmd.Metadata = map[string]any{}
			}
			cmd.Metadata[appConfigKey] = &appConfig{
				Settings: s,
				Format:   format,
				Debug:    debug,
			}
			slog.Debug("settings loaded", "format", format, "concurrency", s.Concurrency)
			return ctx, nil
		},
	}
}

func initLogging(w io.Writer, s *config.Settings, debug bool) {
	level := logging.ParseLogLevel(s.LogLevel)
	if debug {
		level = slog.LevelDebug
	}
	h := logging.NewCLIHandler(w, level)
	if !s.Color() {
		h = h.WithoutColor()
	}
	slog.SetDefault(slog.New(h))
}

func encode(w io.Writer, format string, v any) error {
	if format == config.FormatYAML {
		e := yaml.NewEncoder(w)
		defer e.Close()
		return e.Encode(v)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}

func output(cmd *cli.Command, v any) error {
	if err := encode(cmd.Root().Writer, getConfig(cmd).Format, v); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
