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
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/codi"
	"github.com/poiesic/codi/config"
	"github.com/poiesic/codi/core"
	"github.com/poiesic/codi/indexer"
	"github.com/poiesic/codi/tasks"
	"github.com/urfave/cli/v2"
)

const usageExamples = `Examples:
  codi task --list
  codi task --id add-email --desc "Add email validation"
  codi task --id add-email
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "codi",
		Usage:     "Index a codebase and find the files that matter for a task",
		Version:   codi.Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory",
				Value:   ".",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Index the project and save the index under .codi",
				Action: initCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N files",
						Value: 1,
					},
				},
			},
			{
				Name:   "task",
				Usage:  "Create, re-run or list tasks",
				Action: taskCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "list",
						Usage: "List all saved tasks",
					},
					&cli.StringFlag{
						Name:    "id",
						Aliases: []string{"i"},
						Usage:   "Task ID",
					},
					&cli.StringFlag{
						Name:    "desc",
						Aliases: []string{"d"},
						Usage:   "Task description",
					},
				},
			},
			{
				Name:  "config",
				Usage: "Manage the project configuration",
				Subcommands: []*cli.Command{
					{
						Name:   "init",
						Usage:  "Write a default .codi/config.yaml",
						Action: configInitCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "force",
								Usage: "Overwrite an existing config file",
							},
						},
					},
				},
			},
			{
				Name:   "version",
				Usage:  "Print the codi version",
				Action: versionCommand,
			},
		},
	}
}

func initCommand(c *cli.Context) error {
	root := c.String("root")
	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ws, err := codi.Open(root, cfg)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer ws.Close()

	builder, err := ws.NewIndexer()
	if err != nil {
		return fmt.Errorf("failed to create indexer: %w", err)
	}
	defer builder.Release()

	fmt.Fprintf(c.App.ErrWriter, "Project: %s\n", ws.Root())
	fmt.Fprintf(c.App.ErrWriter, "Storage: %s\n", cfg.Storage)
	fmt.Fprintln(c.App.ErrWriter)

	monitor := indexer.NewProgressMonitor(c.App.ErrWriter, c.Int("report-interval"))
	records, err := builder.Index(c.Context, ws.Root(), monitor)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Indexed %d files in %s\n", len(records), monitor.Elapsed().Round(time.Millisecond))
	return nil
}

func taskCommand(c *cli.Context) error {
	id := strings.TrimSpace(c.String("id"))
	desc := strings.TrimSpace(c.String("desc"))

	switch {
	case c.Bool("list"):
		return listTasks(c)
	case id != "" && desc != "":
		return runTask(c, id, desc)
	case id != "":
		return runTask(c, id, "")
	}

	fmt.Fprint(c.App.ErrWriter, "Invalid usage.\n\n"+usageExamples)
	return errors.New("task requires --list or --id")
}

// listTasks reads the store directly so listing works without AI credentials.
func listTasks(c *cli.Context) error {
	root := c.String("root")
	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := codi.OpenStore(root, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	all, err := store.ListTasks(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	w := c.App.Writer
	if len(all) == 0 {
		fmt.Fprintln(w, "No tasks created yet.")
		return nil
	}
	for _, task := range all {
		fmt.Fprintf(w, "ID: %s\n", task.ID)
		fmt.Fprintf(w, "  %s\n", task.Description)
		if best, ok := task.Best(); ok {
			fmt.Fprintf(w, "  Best match: %s (%s)\n", best.File, formatScore(best.Score))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// runTask creates or replaces the task when desc is set, otherwise it
// re-runs the stored description.
func runTask(c *cli.Context, id, desc string) error {
	root := c.String("root")
	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ws, err := codi.Open(root, cfg)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer ws.Close()

	processor, err := ws.NewTaskProcessor()
	if err != nil {
		return fmt.Errorf("failed to create task processor: %w", err)
	}

	var task *core.Task
	if desc != "" {
		fmt.Fprintf(c.App.ErrWriter, "Updating task: %s\n", id)
		task, err = processor.CreateOrUpdate(c.Context, id, desc)
	} else {
		fmt.Fprintf(c.App.ErrWriter, "Re-processing task: %s\n", id)
		task, err = processor.Rerun(c.Context, id)
	}
	if errors.Is(err, tasks.ErrUnknownTask) {
		fmt.Fprintf(c.App.ErrWriter, "Task %q does not exist.\nRun: codi task --id %s --desc \"your description\"\n", id, id)
		return err
	}
	if err != nil {
		return err
	}

	printTask(c.App.Writer, task)
	return nil
}

func printTask(w io.Writer, task *core.Task) {
	fmt.Fprintf(w, "Keywords: %s\n\n", strings.Join(task.Keywords, ", "))
	top := task.Top(tasks.TopN)
	if len(top) == 0 {
		fmt.Fprintln(w, "No matching files.")
		return
	}
	fmt.Fprintln(w, "Top matching files:")
	for _, m := range top {
		fmt.Fprintf(w, "  -> %s (%s)\n", m.File, formatScore(m.Score))
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func configInitCommand(c *cli.Context) error {
	path, err := config.WriteDefault(c.String("root"), c.Bool("force"))
	if errors.Is(err, config.ErrConfigExists) {
		return fmt.Errorf("%w (use --force to overwrite)", err)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

func versionCommand(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "codi %s\n", codi.Version)
	return nil
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

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
