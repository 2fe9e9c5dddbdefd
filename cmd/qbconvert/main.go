package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/qbexport/internal/export"
	"github.com/dgallion1/qbexport/internal/latex"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	output  string
	format  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "qbconvert [file.tex]",
		Short: "Convert a LaTeX question bank into a spreadsheet",
		Long: "Reads a LaTeX question bank marked up with % Question text, % Option,\n" +
			"% Correct Answer, % Solution and % Quick Tip comments and writes one row\n" +
			"per question. Reads stdin when no file (or \"-\") is given.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return run(cmd, input, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "output.xlsx", "output file, or - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (xlsx, csv, json, docx, html); default from output extension")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")
	return cmd
}

func run(cmd *cobra.Command, input string, opts options) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	w, err := writerFor(opts)
	if err != nil {
		return err
	}

	src, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	records := latex.NewExtractor(log).Process(string(src))
	if len(records) == 0 {
		return fmt.Errorf("no questions found in %s", input)
	}

	if opts.output == "-" {
		return w.Write(cmd.OutOrStdout(), records)
	}

	out, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := w.Write(out, records); err != nil {
		out.Close()
		os.Remove(opts.output)
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	log.Info("wrote questions", "records", len(records), "output", opts.output)
	fmt.Fprintf(cmd.OutOrStdout(), "%d questions written to %s\n", len(records), opts.output)
	return nil
}

// writerFor picks the export writer from --format, falling back to the
// output file extension.
func writerFor(opts options) (export.Writer, error) {
	if opts.format != "" || opts.output == "-" {
		return export.ForFormat(opts.format)
	}
	return export.ForFilename(filepath.Base(opts.output))
}

func readInput(stdin io.Reader, input string) ([]byte, error) {
	if input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
