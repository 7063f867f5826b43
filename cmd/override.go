package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/cleanify/internal/formatter"
	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/repositories"
	"github.com/desertthunder/cleanify/internal/shared"
	"github.com/urfave/cli/v3"
)

// OverrideAdd saves a manual override so later runs and the server replay it.
func (r *Runner) OverrideAdd(ctx context.Context, cmd *cli.Command) error {
	s, err := r.settings(cmd)
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	trackID := cmd.String("id")
	o, err := repositories.NewOverrideStore(r.overrides).Save(trackID, cmd.Bool("block"), cmd.String("reason"), s)
	if err != nil {
		return err
	}
	r.engine.AddManualOverride(o.TrackID(), o.ShouldBlock(), o.Reason(), s)

	r.logger.Info("override saved", "id", o.ID(), "track", o.TrackID(), "level", o.Level())
	return r.writePlain("✓ %s %s under %s (override %s)\n", formatter.Decision(o.ShouldBlock()), o.TrackID(), s, o.ID())
}

// OverrideList prints saved overrides.
func (r *Runner) OverrideList(ctx context.Context, cmd *cli.Command) error {
	criteria := map[string]any{}
	if id := cmd.String("id"); id != "" {
		criteria["track_id"] = id
	}
	if raw := cmd.String("level"); raw != "" {
		level, err := lexicon.ParseLevel(raw)
		if err != nil {
			return fmt.Errorf("%w: --level: %w", shared.ErrInvalidFlag, err)
		}
		criteria["level"] = level
	}

	if err := r.open(); err != nil {
		return err
	}

	overrides, err := r.overrides.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(overrides, cmd.Bool("pretty"))
	}
	if len(overrides) == 0 {
		return r.writePlain("No overrides saved\n")
	}
	return r.writePlain("%s\n", formatter.OverridesTable(overrides))
}

// OverrideRemove soft-deletes a saved override.
func (r *Runner) OverrideRemove(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: override id", shared.ErrMissingArgument)
	}
	if err := r.open(); err != nil {
		return err
	}

	if err := r.overrides.Delete(id); err != nil {
		return err
	}
	r.logger.Info("override removed", "id", id)
	return r.writePlain("✓ Removed override %s\n", id)
}

// History prints recorded verdicts, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	criteria := map[string]any{"limit": cmd.Int("limit")}
	if id := cmd.String("id"); id != "" {
		criteria["track_id"] = id
	}
	if raw := cmd.String("level"); raw != "" {
		level, err := lexicon.ParseLevel(raw)
		if err != nil {
			return fmt.Errorf("%w: --level: %w", shared.ErrInvalidFlag, err)
		}
		criteria["level"] = level
	}
	if cmd.IsSet("blocked") {
		criteria["blocked"] = cmd.Bool("blocked")
	}

	if err := r.open(); err != nil {
		return err
	}

	records, err := r.verdicts.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, cmd.Bool("pretty"))
	}
	if len(records) == 0 {
		return r.writePlain("No verdicts recorded\n")
	}
	return r.writePlain("%s\n", formatter.HistoryTable(records))
}
