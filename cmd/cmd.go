// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// runCommand runs the full captioning pipeline for a video URL.
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the full captioning pipeline for a video URL",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "report",
				Aliases: []string{"r"},
				Usage:   "Write the vocabulary report to a file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format (markdown, csv, html, txt)",
			},
			&cli.BoolFlag{
				Name:  "fetch",
				Usage: "Download the formalized caption file to the output directory",
			},
			&cli.BoolFlag{
				Name:  "keep",
				Usage: "Keep the backend session instead of cleaning it up",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the run result as raw JSON",
			},
		},
		Action: r.Run,
	}
}

// stepsCommand exposes each backend endpoint directly for debugging.
func stepsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "steps",
		Aliases: []string{"step"},
		Usage:   "Call individual backend endpoints",
		Commands: []*cli.Command{
			{
				Name:  "process",
				Usage: "Check whether a video already has manual captions",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "url",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.StepProcess,
			},
			{
				Name:  "audio",
				Usage: "Download the audio track for a video",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "url",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "session",
						Usage:    "Session identifier from a prior process call",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.StepAudio,
			},
			{
				Name:  "transcribe",
				Usage: "Transcribe a downloaded audio file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "audio",
						Usage:    "Server-side audio file path",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "session",
						Usage:    "Session identifier",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.StepTranscribe,
			},
			{
				Name:  "formalize",
				Usage: "Formalize a caption file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "session",
						Usage:    "Session identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Server-side caption file path",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.StepFormalize,
			},
			{
				Name:  "extract",
				Usage: "Extract affected vocabulary for a session",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "session",
						Usage:    "Session identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Server-side formalized file path",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.StepExtract,
			},
			{
				Name:  "cleanup",
				Usage: "Discard a backend session and its working files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "session",
						Usage:    "Session identifier",
						Required: true,
					},
				},
				Action: r.StepCleanup,
			},
		},
	}
}

// fetchCommand downloads a produced artifact to the local output directory.
func fetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Download a produced file from the backend",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "path",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
		},
		Action: r.Fetch,
	}
}

// setupCommand handles setup and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config.toml from the embedded template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command for interactive runs.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for the captioning pipeline",
		Action:  r.TUI,
	}
}
