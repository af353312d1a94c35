package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mchmarny/gradepoint/pkg/grade"
	"github.com/urfave/cli/v3"
)

var (
	scaleNameFlag = &cli.StringFlag{
		Name:  "scale",
		Usage: "Letter scale name [STD, G11, U12, U11, PF]",
		Value: grade.Standard.Name(),
	}

	percentFlag = &cli.FloatFlag{
		Name:     "percent",
		Aliases:  []string{"p"},
		Usage:    "Course percentage to resolve",
		Required: true,
	}

	pointsFlag = &cli.StringFlag{
		Name:  "points",
		Usage: "Grade-point scale [university, high-school] (optional)",
	}

	unitsFlag = &cli.IntFlag{
		Name:  "units",
		Usage: "Credit units used with --points",
		Value: 1,
	}

	resolveCmd = &cli.Command{
		Name:  "resolve",
		Usage: "Resolve a percentage to a letter and optionally grade points",
		UsageText: `gradepoint resolve --percent 87.5                          # letter on STD
   gradepoint resolve -p 87.5 --scale U12 --points university --units 4`,
		HideHelpCommand: true,
		Action:          cmdResolve,
		Flags: []cli.Flag{
			scaleNameFlag,
			percentFlag,
			pointsFlag,
			unitsFlag,
		},
	}
)

type resolveResult struct {
	Scale   string   `json:"scale" yaml:"scale"`
	Percent float64  `json:"percent" yaml:"percent"`
	Letter  string   `json:"letter" yaml:"letter"`
	Units   int      `json:"units,omitempty" yaml:"units,omitempty"`
	Points  *float64 `json:"points,omitempty" yaml:"points,omitempty"`
}

func cmdResolve(_ context.Context, cmd *cli.Command) error {
	s, ok := grade.LookupScale(cmd.String(scaleNameFlag.Name))
	if !ok {
		return fmt.Errorf("unknown scale: %s", cmd.String(scaleNameFlag.Name))
	}

	pct := cmd.Float(percentFlag.Name)
	letter, ok := s.Resolve(pct)
	if !ok {
		return fmt.Errorf("%w: %g on %s", grade.ErrNoScaleMatch, pct, s.Name())
	}

	res := &resolveResult{
		Scale:   s.Name(),
		Percent: pct,
		Letter:  letter,
	}

	if name := strings.TrimSpace(cmd.String(pointsFlag.Name)); name != "" {
		ps, ok := grade.LookupPointScale(name)
		if !ok {
			return fmt.Errorf("unknown point scale: %s", name)
		}
		units := int(cmd.Int(unitsFlag.Name))
		if units < 0 {
			return fmt.Errorf("units must not be negative: %d", units)
		}
		res.Units = units
		if p, ok := ps.Resolve(letter, units); ok {
			res.Points = &p
		}
	}

	return output(cmd, res)
}
