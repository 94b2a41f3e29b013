package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/recap/internal/errors"
	"github.com/hpungsan/recap/internal/ops"
	"github.com/hpungsan/recap/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(deps *ops.Deps) *cli.App {
	app := &cli.App{
		Name:    "recap",
		Usage:   "Local chat transcript store",
		Version: Version,
		Commands: []*cli.Command{
			addCmd(deps),
			searchCmd(deps),
			summaryCmd(deps),
			reindexCmd(deps),
			webCmd(deps),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Store a conversation (reads content from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Conversation title (derived from content if omitted)"},
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Conversation date, ISO-8601 (defaults to now)"},
		},
		Action: func(c *cli.Context) error {
			// Require stdin input
			if !stdinHasData() {
				return outputError(errors.NewValidation("content must be piped via stdin"))
			}

			content, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if content == "" {
				return outputError(errors.NewValidation("content is required"))
			}

			output, err := ops.Add(deps, ops.AddInput{
				Content: content,
				Title:   c.String("title"),
				Date:    c.String("date"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search conversations by keyword",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results (default 10)"},
		},
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")

			output, err := ops.Search(deps, ops.SearchInput{
				Query: query,
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// summaryCmd creates the summary command.
func summaryCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Generate a weekly activity summary",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "week-offset", Aliases: []string{"w"}, Usage: "Whole weeks back from the current week (0 = this week)"},
			&cli.BoolFlag{Name: "print", Aliases: []string{"p"}, Usage: "Print the rendered document instead of JSON metadata"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.WeeklySummary(deps, ops.SummaryInput{
				WeekOffset: c.Int("week-offset"),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("print") {
				fmt.Print(output.Document)
				return nil
			}
			return outputJSON(output)
		},
	}
}

// reindexCmd creates the reindex command.
func reindexCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "reindex",
		Usage: "Rebuild index.json and topics.json from the content files",
		Action: func(c *cli.Context) error {
			output, err := ops.Reindex(deps)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// webCmd creates the web command.
func webCmd(deps *ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the read-only web viewer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8246, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(deps, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if rErr, ok := err.(*errors.RecapError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", rErr.Code, rErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
