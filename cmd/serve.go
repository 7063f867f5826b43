package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/desertthunder/cleanify/internal/filter"
	"github.com/desertthunder/cleanify/internal/formatter"
	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/repositories"
	"github.com/desertthunder/cleanify/internal/server"
	"github.com/desertthunder/cleanify/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP JSON API and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = port
	}

	r.openOptional()

	opts := []server.HandlerOption{server.WithHandlerLogger(r.logger)}
	if r.overrides != nil {
		opts = append(opts, server.WithOverrideStore(repositories.NewOverrideStore(r.overrides)))
	}

	router := server.NewBasicRouter()
	router.Use(server.Recover(r.logger), server.Logging(r.logger))
	router.Handler(server.NewFilterHandler(r.engine, r.defaultLevel(), opts...))
	r.logger.Debug("routes registered", "patterns", router.Patterns())

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r.writePlain("Serving cleanify API on http://%s (Ctrl+C to stop)\n", cfg.Addr())
	return server.Serve(ctx, cfg.Addr(), router, r.logger)
}

// Settings prints the default settings for a level.
func (r *Runner) Settings(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("level")
	if raw == "" {
		raw = r.config.Filter.Level
	}

	level, err := lexicon.ParseLevel(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}

	s := filter.DefaultSettings(level)
	if cmd.Bool("json") {
		return r.writeJSON(s, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", formatter.SettingsTable(s))
}

// Levels lists the filter levels.
func (r *Runner) Levels(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("json") {
		type levelView struct {
			Level       lexicon.Level `json:"level"`
			Name        string        `json:"name"`
			Description string        `json:"description"`
			Strictness  string        `json:"strictness"`
			Words       int           `json:"words"`
			Phrases     int           `json:"phrases"`
		}

		views := []levelView{}
		for _, l := range lexicon.Levels() {
			b, err := lexicon.Describe(l)
			if err != nil {
				return err
			}
			views = append(views, levelView{l, b.Name, b.Description, string(b.Strictness), len(b.Words), len(b.Phrases)})
		}
		return r.writeJSON(views, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", formatter.LevelsTable())
}
