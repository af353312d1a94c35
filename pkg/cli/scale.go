package cli

import (
	"context"
	"fmt"

	"github.com/mchmarny/gradepoint/pkg/grade"
	"github.com/urfave/cli/v3"
)

var (
	scaleShowNameFlag = &cli.StringFlag{
		Name:     "name",
		Usage:    "Scale name",
		Required: true,
	}

	scaleCmd = &cli.Command{
		Name:  "scale",
		Usage: "List built-in letter scales",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List built-in scales and their bands",
				Action:  cmdScaleList,
			},
			{
				Name:    "show",
				Aliases: []string{"s"},
				Usage:   "Print a single scale as a table",
				Action:  cmdScaleShow,
				Flags: []cli.Flag{
					scaleShowNameFlag,
				},
			},
		},
	}
)

type scaleView struct {
	Name  string       `json:"name" yaml:"name"`
	Bands []grade.Band `json:"bands" yaml:"bands"`
}

func cmdScaleList(_ context.Context, cmd *cli.Command) error {
	all := grade.BuiltinScales()
	list := make([]*scaleView, 0, len(all))
	for _, s := range all {
		list = append(list, &scaleView{Name: s.Name(), Bands: s.Bands()})
	}
	return output(cmd, list)
}

func cmdScaleShow(_ context.Context, cmd *cli.Command) error {
	name := cmd.String(scaleShowNameFlag.Name)
	s, ok := grade.LookupScale(name)
	if !ok {
		return fmt.Errorf("unknown scale: %s", name)
	}
	if _, err := fmt.Fprintln(cmd.Root().Writer, s.String()); err != nil {
		return fmt.Errorf("error writing scale: %w", err)
	}
	return nil
}
