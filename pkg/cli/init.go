package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mchmarny/gradepoint/pkg/config"
	"github.com/urfave/cli/v3"
)

var (
	initPathFlag = &cli.StringFlag{
		Name:      "path",
		Usage:     "Where to write the sample gradebook (optional, default: $GRADEPOINT_GRADEBOOK or $HOME/.gradepoint/gradebook.yaml)",
		TakesFile: true,
	}

	initCmd = &cli.Command{
		Name:            "init",
		Usage:           "Write a sample gradebook to get started",
		HideHelpCommand: true,
		Action:          cmdInit,
		Flags: []cli.Flag{
			initPathFlag,
		},
	}
)

type initResult struct {
	Path string `json:"path" yaml:"path"`
}

func cmdInit(_ context.Context, cmd *cli.Command) error {
	path := cmd.String(initPathFlag.Name)
	if path == "" {
		path = getConfig(cmd).Settings.Gradebook
	}
	if path == "" {
		p, err := config.DefaultGradebookPath()
		if err != nil {
			return fmt.Errorf("resolving default gradebook: %w", err)
		}
		path = p
	}

	if err := config.WriteSample(path); err != nil {
		return err
	}

	slog.Info("gradebook created", "path", path)
	return output(cmd, &initResult{Path: path})
}
