package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	wbcli "github.com/wrongbook/backend/cli"
	"github.com/wrongbook/backend/internal/analysis"
	"github.com/wrongbook/backend/internal/engine"
	"github.com/urfave/cli/v3"
)

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "The xlsx spreadsheet to analyze.",
		Required: true,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "Output format: text, json or yaml.",
		Value: "text",
	}
}

func analysisFlags() []cli.Flag {
	return []cli.Flag{
		fileFlag(),
		&cli.StringFlag{
			Name:  "layout",
			Usage: "Spreadsheet layout: auto, column-suffix, row-scan or fixed-offset. Defaults to ANALYSIS_DEFAULT_LAYOUT.",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Question order: original, accuracy_asc or accuracy_desc. Defaults to ANALYSIS_DEFAULT_SORT.",
		},
		&cli.StringFlag{
			Name:  "teacher",
			Usage: "Only analyze the students of this teacher (column-suffix layout only).",
		},
		&cli.StringFlag{
			Name:  "class",
			Usage: "Only analyze the students of this class (column-suffix layout only).",
		},
		&cli.BoolFlag{
			Name:  "fold-case",
			Usage: "Compare answers case-insensitively.",
		},
		&cli.BoolFlag{
			Name:  "collapse-space",
			Usage: "Squeeze runs of whitespace inside answers before comparing.",
		},
	}
}

func requestFromFlags(c *cli.Command) analysis.Request {
	req := analysis.Request{
		Layout: c.String("layout"),
		Sort:   c.String("sort"),
		Filter: engine.Filter{
			Teacher: c.String("teacher"),
			Class:   c.String("class"),
		},
		Caller: "wrongbook-cli",
	}

	if c.IsSet("fold-case") {
		v := c.Bool("fold-case")
		req.FoldCase = &v
	}
	if c.IsSet("collapse-space") {
		v := c.Bool("collapse-space")
		req.CollapseSpace = &v
	}

	return req
}

func newAnalyzeCommand(clictx *wbcli.Context) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Analyze the wrong answers of every question in a spreadsheet",
		Flags: append(analysisFlags(), formatFlag()),
		Action: func(ctx context.Context, c *cli.Command) error {
			format, err := wbcli.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}

			report, err := clictx.Analyze(ctx, c.String("file"), requestFromFlags(c))
			if err != nil && !errors.Is(err, engine.ErrNoQuestions) {
				return err
			}

			if writeErr := clictx.WriteReport(report, format); writeErr != nil {
				return fmt.Errorf("write report: %w", writeErr)
			}

			return err
		},
	}
}

func newFiltersCommand(clictx *wbcli.Context) *cli.Command {
	return &cli.Command{
		Name:  "filters",
		Usage: "List the teachers and classes found in a spreadsheet",
		Flags: []cli.Flag{fileFlag(), formatFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			format, err := wbcli.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}

			filters, err := clictx.Filters(ctx, c.String("file"))
			if err != nil {
				return err
			}

			return clictx.WriteFilters(filters, format)
		},
	}
}

func newBrowseCommand(clictx *wbcli.Context) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse the questions of a spreadsheet interactively",
		Flags: analysisFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			err := clictx.Browse(ctx, c.String("file"), requestFromFlags(c))
			if errors.Is(err, engine.ErrNoQuestions) {
				fmt.Fprintln(os.Stderr, "No question could be analyzed; run \"analyze\" to see why each one was skipped.")
			}

			return err
		},
	}
}

func newRootCommand(subcommands ...*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     "wrongbook",
		Usage:    "Analyze the wrong answers of quiz and exam response spreadsheets.",
		Commands: subcommands,
	}
}
