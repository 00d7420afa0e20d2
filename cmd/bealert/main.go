package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"bealert/internal"
	"bealert/internal/bin"
	"bealert/internal/config"
	"bealert/internal/pipeline"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "bealert"})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	app := &cli.Command{
		Name:    "bealert",
		Usage:   "Convert a member spreadsheet to the BE-Alert BIN import CSV",
		Version: "1.0.0",
		Commands: []*cli.Command{
			convertCommand(cfg, logger),
			checkCommand(logger),
			templateCommand(cfg),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, internal.ErrRowsSkipped) {
			logger.Warnf("%v", err)
			os.Exit(1)
		}
		logger.Errorf("%v", err)
		os.Exit(2)
	}
}

func convertCommand(cfg config.Config, logger *log.Logger) *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert an xlsx or csv member list to the BIN CSV",
		ArgsUsage: "<members.xlsx|members.csv>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output CSV path (default: input name with .csv)",
			},
			&cli.BoolFlag{
				Name:  "report",
				Usage: "write an xlsx report of skipped rows next to the output",
				Value: cfg.Report,
			},
			&cli.StringFlag{
				Name:  "delimiter",
				Usage: "output field delimiter",
				Value: cfg.Delimiter,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			input := cmd.Args().First()
			if input == "" {
				return fmt.Errorf("input file is required")
			}

			cfg.Delimiter = cmd.String("delimiter")
			conv, err := pipeline.NewConverter(cfg)
			if err != nil {
				return err
			}

			out := cmd.String("out")
			if out == "" {
				out = defaultOutputPath(cfg, input)
			}

			summary, err := conv.ConvertFile(input, out)
			if err != nil {
				return err
			}

			for _, d := range summary.Diagnostics {
				logger.Warn("row skipped", "row", d.Record.Row, "reason", d.Err)
			}
			logger.Info("conversion complete",
				"read", summary.Read,
				"converted", summary.Converted,
				"skipped", summary.Skipped,
				"output", out,
			)

			if cmd.Bool("report") && summary.Skipped > 0 {
				reportPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".rejects.xlsx"
				if err := pipeline.ExportRejectsXLSX(summary.Diagnostics, reportPath); err != nil {
					return err
				}
				logger.Info("rejects report written", "path", reportPath)
			}

			if summary.Skipped > 0 {
				return fmt.Errorf("%d of %d rows could not be converted: %w",
					summary.Skipped, summary.Read, internal.ErrRowsSkipped)
			}
			return nil
		},
	}
}

func checkCommand(logger *log.Logger) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate that the input file has the required columns",
		ArgsUsage: "<members.xlsx|members.csv>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			input := cmd.Args().First()
			if input == "" {
				return fmt.Errorf("input file is required")
			}
			if err := pipeline.CheckHeaders(input); err != nil {
				return err
			}
			logger.Info("columns OK", "input", input)
			return nil
		},
	}
}

func templateCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "template",
		Usage: "Print the 33 output columns with their sources and defaults",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			conv, err := pipeline.NewConverter(cfg)
			if err != nil {
				return err
			}
			for i, col := range conv.Template().Columns {
				switch col.Source {
				case bin.SourceMapped:
					fmt.Printf("%2d  %-22s <- %s\n", i+1, col.Header, col.Field)
				case bin.SourceFixed:
					fmt.Printf("%2d  %-22s = %q\n", i+1, col.Header, col.Value)
				default:
					fmt.Printf("%2d  %-22s (blank)\n", i+1, col.Header)
				}
			}
			return nil
		},
	}
}

// defaultOutputPath mirrors the historical behavior: the input file's stem
// with a .csv extension, next to the input unless an output dir is configured.
func defaultOutputPath(cfg config.Config, input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if stem == "" {
		stem = "output"
	}
	dir := filepath.Dir(input)
	if cfg.OutputDir != "" {
		dir = cfg.OutputDir
	}
	return filepath.Join(dir, stem+".csv")
}
