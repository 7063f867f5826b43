package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/cleanify/internal/filter"
	"github.com/desertthunder/cleanify/internal/formatter"
	"github.com/desertthunder/cleanify/internal/shared"
	"github.com/urfave/cli/v3"
)

// Suite runs a built-in suite of known tracks and reports which expectations held.
func (r *Runner) Suite(ctx context.Context, cmd *cli.Command) error {
	name := strings.ToLower(strings.TrimSpace(cmd.StringArg("name")))
	if name == "" {
		return fmt.Errorf("%w: suite name (%s)", shared.ErrMissingArgument, strings.Join(filter.SuiteNames(), ", "))
	}

	s, err := r.settings(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("running suite", "suite", name, "settings", s)
	results, err := r.engine.RunSuite(ctx, name, s)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", formatter.SuiteTable(name, results))
}
