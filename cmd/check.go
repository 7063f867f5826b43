package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/cleanify/internal/filter"
	"github.com/desertthunder/cleanify/internal/formatter"
	"github.com/desertthunder/cleanify/internal/models"
	"github.com/desertthunder/cleanify/internal/shared"
	"github.com/urfave/cli/v3"
)

// Check prints the verdict for a single track.
func (r *Runner) Check(ctx context.Context, cmd *cli.Command) error {
	s, err := r.settings(cmd)
	if err != nil {
		return err
	}
	r.openOptional()

	track := models.NewTrack(cmd.String("id"), cmd.String("title"), cmd.String("artist"))
	r.logger.Debug("checking track", "track", track.Label(), "settings", s)

	v := r.engine.ShouldBlockTrack(ctx, track.ID, track.Name, track.Artist, s)
	if cmd.Bool("json") {
		return r.writeJSON(v, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", formatter.VerdictDetail(v))
}

// Test analyzes lyrics given inline or read from a file.
func (r *Runner) Test(ctx context.Context, cmd *cli.Command) error {
	text := cmd.String("lyrics")
	path := cmd.String("file")

	if text == "" && path == "" {
		return fmt.Errorf("%w: either --lyrics or --file must be provided", shared.ErrMissingArgument)
	}
	if text != "" && path != "" {
		return fmt.Errorf("%w: cannot specify both --lyrics and --file", shared.ErrInvalidArgument)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read lyrics file: %w", err)
		}
		text = string(data)
	}

	s, err := r.settings(cmd)
	if err != nil {
		return err
	}

	res, err := r.engine.TestFilter(text, s)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(res, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", formatter.AnalysisDetail(res))
}

// Batch filters every track in a JSON file, printing progress as batches complete.
func (r *Runner) Batch(ctx context.Context, cmd *cli.Command) error {
	tracks, err := readTracks(cmd.String("file"))
	if err != nil {
		return err
	}
	s, err := r.settings(cmd)
	if err != nil {
		return err
	}
	r.openOptional()

	asJSON := cmd.Bool("json")
	r.logger.Info("filtering tracks", "count", len(tracks), "settings", s)

	progressCh := make(chan filter.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if asJSON {
				continue
			}
			switch update.Phase {
			case filter.StartBatch:
				r.writePlain("🔍 %s\n", update.Message)
			case filter.CheckTrack:
				r.writePlain("   %s\n", update.Message)
			case filter.FinishRun:
				r.writePlain("\n%s\n", update.Message)
			}
		}
	}()

	verdicts := r.engine.FilterTracksWithProgress(ctx, progressCh, tracks, s)
	close(progressCh)
	<-done

	if path := cmd.String("csv"); path != "" {
		written, err := formatter.WriteVerdictsCSV(verdicts, path)
		if err != nil {
			return err
		}
		r.logger.Info("verdicts exported", "path", written)
	}

	if asJSON {
		return r.writeJSON(verdicts, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", formatter.VerdictTable(verdicts))
}

// Stats prints aggregate statistics for every track in a JSON file.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	tracks, err := readTracks(cmd.String("file"))
	if err != nil {
		return err
	}
	s, err := r.settings(cmd)
	if err != nil {
		return err
	}
	r.openOptional()

	stats := r.engine.GetFilterStats(ctx, tracks, s)
	if cmd.Bool("json") {
		return r.writeJSON(stats, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", formatter.StatsTable(stats))
}

// readTracks decodes a JSON array of tracks, filling placeholders for missing names.
func readTracks(path string) ([]models.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracks file: %w", err)
	}

	var tracks []models.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("%w: failed to parse tracks file: %v", shared.ErrInvalidInput, err)
	}

	for i, t := range tracks {
		if strings.TrimSpace(t.ID) == "" {
			return nil, fmt.Errorf("%w: track %d has no id", shared.ErrInvalidInput, i+1)
		}
		tracks[i] = t.WithDefaults()
	}
	return tracks, nil
}
