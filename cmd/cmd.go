// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// settingsFlags are the per-call filter settings. Unset flags keep the level's defaults.
func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "level",
			Aliases: []string{"l"},
			Usage:   "Filter level: squeaky-clean, family-friendly or teen-safe (default from config)",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Also flag context-sensitive words",
		},
		&cli.BoolFlag{
			Name:  "block-unknown",
			Usage: "Block tracks whose lyrics cannot be found",
		},
		&cli.FloatFlag{
			Name:  "min-confidence",
			Usage: "Score at or above which content is blocked (0-1)",
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

func withFlags(groups ...[]cli.Flag) []cli.Flag {
	flags := []cli.Flag{}
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create the config file if missing, initialize the database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// checkCommand decides whether a single track should be blocked.
func checkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Check whether a track should be blocked",
		Flags: withFlags([]cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Track ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Track title",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "artist",
				Aliases:  []string{"a"},
				Usage:    "Track artist",
				Required: true,
			},
		}, settingsFlags(), outputFlags()),
		Action: r.Check,
	}
}

// testCommand analyzes raw lyrics without lookup or caching.
func testCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "Analyze lyrics text directly",
		Flags: withFlags([]cli.Flag{
			&cli.StringFlag{
				Name:  "lyrics",
				Usage: "Lyrics text to analyze",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path to a file containing lyrics",
			},
		}, settingsFlags(), outputFlags()),
		Action: r.Test,
	}
}

func tracksFileFlag() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "file",
			Aliases:  []string{"f"},
			Usage:    "JSON file with an array of tracks ({id, name, artist})",
			Required: true,
		},
	}
}

// batchCommand filters a list of tracks.
func batchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Filter a list of tracks in concurrent batches",
		Flags: withFlags(tracksFileFlag(), []cli.Flag{
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Also export verdicts to this CSV file",
			},
		}, settingsFlags(), outputFlags()),
		Action: r.Batch,
	}
}

// statsCommand summarizes verdicts for a list of tracks.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Summarize block rate and reasons for a list of tracks",
		Flags:  withFlags(tracksFileFlag(), settingsFlags(), outputFlags()),
		Action: r.Stats,
	}
}

// suiteCommand runs the built-in test suites against live lyrics providers.
func suiteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "suite",
		Usage: "Run a built-in track suite: explicit, clean or borderline",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "name",
			},
		},
		Flags:  withFlags(settingsFlags(), outputFlags()),
		Action: r.Suite,
	}
}

// overrideCommand manages persisted manual overrides.
func overrideCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "override",
		Usage: "Manage manual overrides",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Force a verdict for a track under the given settings",
				Flags: withFlags([]cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Track ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "block",
						Usage: "Block the track (default allows it)",
					},
					&cli.StringFlag{
						Name:  "reason",
						Usage: "Reason shown with the verdict",
						Value: "parent approved",
					},
				}, settingsFlags()),
				Action: r.OverrideAdd,
			},
			{
				Name:  "list",
				Usage: "List saved overrides",
				Flags: withFlags([]cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "Only overrides for this track ID",
					},
					&cli.StringFlag{
						Name:    "level",
						Aliases: []string{"l"},
						Usage:   "Only overrides for this level",
					},
				}, outputFlags()),
				Action: r.OverrideList,
			},
			{
				Name:  "rm",
				Usage: "Remove a saved override by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.OverrideRemove,
			},
		},
	}
}

// historyCommand lists recorded verdicts.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recorded verdicts, newest first",
		Flags: withFlags([]cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "Only verdicts for this track ID",
			},
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   "Only verdicts for this level",
			},
			&cli.BoolFlag{
				Name:  "blocked",
				Usage: "Only blocked (true) or allowed (false) verdicts",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of verdicts to show",
				Value: 20,
			},
		}, outputFlags()),
		Action: r.History,
	}
}

// settingsCommand prints the default settings for a level.
func settingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show the default settings for a level",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "level",
			},
		},
		Flags:  outputFlags(),
		Action: r.Settings,
	}
}

// levelsCommand lists the filter levels.
func levelsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "levels",
		Usage:  "List filter levels and lexicon sizes",
		Flags:  outputFlags(),
		Action: r.Levels,
	}
}

// serveCommand starts the HTTP JSON API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the filter over an HTTP JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default from config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default from config)",
			},
		},
		Action: r.Serve,
	}
}
