// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "summarit",
		Usage: "Summarize text, documents, web pages, videos and audio with a language model",
		Description: "Model endpoints and tuning are read from SUMMARIT_* environment variables " +
			"(SUMMARIT_LLM_HOST, SUMMARIT_LLM_MODEL, SUMMARIT_API_KEY, SUMMARIT_MAX_CONCURRENCY, ...).",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Summarize a single input",
				ArgsUsage: "<content | path | url>",
				Action:    runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "type",
						Aliases:  []string{"t"},
						Usage:    "Input type (text, pdf, url, email, video, audio, digest)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read the content from a file instead of the arguments (- for stdin)",
					},
					&cli.BoolFlag{
						Name:  "halt",
						Usage: "Skip the remaining stages after the first failure",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the result as a JSON object",
					},
				},
			},
			{
				Name:   "batch",
				Usage:  "Summarize every job in a JSON Lines file",
				Action: batchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Path to the jobs file (- for stdin)",
						Value:   "-",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write results to (- for stdout)",
						Value:   "-",
					},
					&cli.IntFlag{
						Name:  "jobs",
						Usage: "Number of inputs summarized at the same time",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N jobs",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "halt",
						Usage: "Skip the remaining stages of a job after its first failure",
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
