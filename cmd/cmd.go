// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		syncCommand, authCommand, setupCommand, exportCommand, viewerCommand, apiCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// credentialFlags are shared by commands that talk to MangaDex.
func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "MangaDex username (overrides config)",
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "MangaDex password (overrides config)",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "MangaDex session token (skips password login)",
		},
	}
}

// syncCommand handles the MangaDex → ComicK sync pipeline
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync followed manga to ComicK",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run full MangaDex → ComicK library sync",
				Flags: append(credentialFlags(),
					&cli.StringFlag{
						Name:  "comick-token",
						Usage: "ComicK bearer token (overrides config)",
					},
					&cli.BoolFlag{
						Name:    "dry-run",
						Aliases: []string{"n"},
						Usage:   "Compute and show the plan without adding anything",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Page size for the MangaDex follows endpoint",
					},
					&cli.IntFlag{
						Name:  "search-limit",
						Usage: "Search candidates requested per title",
					},
					&cli.BoolFlag{
						Name:  "plan",
						Usage: "Print the full per-title plan table",
					},
					&cli.StringFlag{
						Name:  "csv",
						Usage: "Write unresolved/failed titles to a CSV file",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Skip the local match cache",
					},
				),
				Action: r.SyncRun,
			},
		},
	}
}

// authCommand handles MangaDex authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage MangaDex authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Log in to MangaDex and print the session token",
				Flags:  credentialFlags(),
				Action: r.AuthLogin,
			},
			{
				Name:  "status",
				Usage: "Check whether the current session token is valid",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "token",
						Usage: "MangaDex session token (overrides config)",
					},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the match cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create config.toml and initialize the match cache database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:    "comick",
				Aliases: []string{"ck"},
				Usage:   "Extract the ComicK bearer token from browser headers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.SetupComick,
			},
		},
	}
}

// exportCommand handles library export for the viewer
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export followed manga with details to a library JSON file",
		Flags: append(credentialFlags(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: library_{epoch}.json)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Page size for the MangaDex follows endpoint",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent detail fetches",
				Value: 5,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Detail requests per second",
				Value: 5.0,
			},
		),
		Action: r.ExportRun,
	}
}

// viewerCommand launches the library TUI
func viewerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "viewer",
		Aliases: []string{"view", "tui"},
		Usage:   "Browse an exported library file interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "library",
				Aliases: []string{"l"},
				Usage:   "Path to library JSON file (overrides config)",
			},
		},
		Action: r.Viewer,
	}
}

// apiCommand handles direct API calls for debugging
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to MangaDex or ComicK",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "service",
						Aliases: []string{"s"},
						Usage:   "Target service (mangadex or comick)",
						Value:   "mangadex",
					},
					&cli.StringFlag{
						Name:  "token",
						Usage: "Bearer token for the request",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// cacheCommand handles the local match cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the local match cache",
		Commands: []*cli.Command{
			{
				Name:  "matches",
				Usage: "List cached title matches",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheMatches,
			},
			{
				Name:   "clear",
				Usage:  "Delete all cached title matches",
				Action: r.CacheClear,
			},
		},
	}
}
