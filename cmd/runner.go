package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cleanify/internal/filter"
	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/lyrics"
	"github.com/desertthunder/cleanify/internal/repositories"
	"github.com/desertthunder/cleanify/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	lyrics     filter.LyricsSource
	engine     *filter.Engine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	db        *sql.DB
	overrides *repositories.OverrideRepository
	verdicts  *repositories.VerdictRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Lyrics     filter.LyricsSource
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	DB         *sql.DB // already migrated; opened lazily from config when nil
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Lyrics == nil {
		opts.Lyrics = lyrics.NewServiceFromConfig(opts.Config, opts.HTTPClient, opts.Logger)
	}

	r := &Runner{
		config:     opts.Config,
		lyrics:     opts.Lyrics,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	r.engine = r.newEngine(nil)

	if opts.DB != nil {
		if err := r.attach(opts.DB); err != nil {
			r.logger.Warn("failed to restore overrides", "error", err)
		}
	}
	return r
}

func (r *Runner) newEngine(recorder filter.Recorder) *filter.Engine {
	opts := []filter.Option{
		filter.WithLogger(r.logger),
		filter.WithBatchSize(r.config.Filter.BatchSize),
	}
	if r.config.Filter.StrictCacheKey {
		opts = append(opts, filter.WithStrictCacheKey())
	}
	if recorder != nil {
		opts = append(opts, filter.WithRecorder(recorder))
	}
	return filter.New(r.lyrics, opts...)
}

// attach wires db into the runner: repositories, a recording engine and the persisted overrides.
func (r *Runner) attach(db *sql.DB) error {
	r.db = db
	r.overrides = repositories.NewOverrideRepository(db)
	r.verdicts = repositories.NewVerdictRepository(db)
	r.engine = r.newEngine(repositories.NewVerdictRecorder(r.verdicts))

	n, err := repositories.NewOverrideStore(r.overrides).Restore(r.engine)
	if err != nil {
		return err
	}
	if n > 0 {
		r.logger.Info("restored manual overrides", "count", n)
	}
	return nil
}

// open connects to the configured database once.
func (r *Runner) open() error {
	if r.db != nil {
		return nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	return r.attach(db)
}

// openOptional is [Runner.open] for commands that work without persistence.
func (r *Runner) openOptional() {
	if err := r.open(); err != nil {
		r.logger.Warn("continuing without history or saved overrides", "error", err)
	}
}

// Close releases the database connection, if any.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, checkCommand, testCommand, batchCommand, statsCommand, suiteCommand,
		overrideCommand, historyCommand, settingsCommand, levelsCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// defaultLevel returns the configured level, falling back to family-friendly.
func (r *Runner) defaultLevel() lexicon.Level {
	level, err := lexicon.ParseLevel(r.config.Filter.Level)
	if err != nil {
		r.logger.Warn("invalid filter level in config, using family-friendly", "level", r.config.Filter.Level)
		return lexicon.FamilyFriendly
	}
	return level
}

// settings builds filter settings from the level's defaults and any explicitly set flags.
func (r *Runner) settings(cmd *cli.Command) (filter.Settings, error) {
	level := r.defaultLevel()
	if raw := cmd.String("level"); raw != "" {
		parsed, err := lexicon.ParseLevel(raw)
		if err != nil {
			return filter.Settings{}, fmt.Errorf("%w: --level: %w", shared.ErrInvalidFlag, err)
		}
		level = parsed
	}

	s := filter.DefaultSettings(level)
	if cmd.IsSet("strict") {
		s.StrictMode = cmd.Bool("strict")
	}
	if cmd.IsSet("block-unknown") {
		s.BlockUnknown = cmd.Bool("block-unknown")
	}
	if cmd.IsSet("min-confidence") {
		c := cmd.Float("min-confidence")
		if c < 0 || c > 1 {
			return filter.Settings{}, fmt.Errorf("%w: --min-confidence must be between 0 and 1", shared.ErrInvalidFlag)
		}
		s.MinConfidence = c
	}
	return s, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
