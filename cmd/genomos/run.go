package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cenexa-creg/genomos/internal/classify"
	"github.com/cenexa-creg/genomos/internal/log"
	"github.com/cenexa-creg/genomos/internal/model"
	"github.com/cenexa-creg/genomos/internal/report"
	"github.com/cenexa-creg/genomos/internal/stats"
	"github.com/cenexa-creg/genomos/internal/tabular"
	"github.com/cenexa-creg/genomos/internal/tally"

	"github.com/spf13/cobra"
)

func doCount(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unsupported arguments: %s", strings.Join(args, ", "))
	}
	config, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx := log.ContextAttrs(cmd.Context(), runAttrs("count"))

	input := flagInput
	if input == "" {
		input = config.Input.Path
	}
	if input == "" {
		return fmt.Errorf("no input file: use --file or set input.path in %s", configPath)
	}
	column := flagStatusColumn
	if column == "" {
		column = config.Input.StatusColumn
	}
	idColumn := flagIDColumn
	if idColumn == "" {
		idColumn = config.Input.IDColumn
	}

	counter := stats.New("genomos")
	rows, err := tabular.File(ctx, counter, input)
	if err != nil {
		return err
	}

	t := tally.Count(ctx, counter, rows, idColumn, column)
	logStats(ctx, counter)

	out, closeOut, err := outputSink(flagOutput)
	if err != nil {
		return err
	}
	if err := report.WriteTally(out, t); err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("writing summary %s: %w", flagOutput, err)
	}
	if flagOutput != "" {
		slog.InfoContext(ctx, "summary saved", "path", flagOutput)
	}
	return nil
}

func doClassify(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unsupported arguments: %s", strings.Join(args, ", "))
	}
	config, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx := log.ContextAttrs(cmd.Context(), runAttrs("classify"))

	refs, err := references(config)
	if err != nil {
		return err
	}
	classifier, err := classify.New(refs)
	if err != nil {
		return err
	}

	input := flagInput
	if input == "" {
		input = config.Input.Path
	}
	if input == "" {
		return fmt.Errorf("no input file: use --file or set input.path in %s", configPath)
	}
	idColumn := flagIDColumn
	if idColumn == "" {
		idColumn = config.Input.IDColumn
	}

	counter := stats.New("genomos")
	rows, err := tabular.File(ctx, counter, input)
	if err != nil {
		return err
	}

	dist := classify.NewDistribution(classifier.Loci())
	var results []classify.Result
	for row, err := range rows {
		if err != nil {
			slog.DebugContext(ctx, "row not decoded, sample stays undetermined", "line", row.Line, "error", err)
			row = model.Row{Line: row.Line}
		}
		res := classifier.Sample(row, idColumn)
		results = append(results, res)
		dist.Add(res)
	}
	logStats(ctx, counter)

	output := flagOutput
	if output == "" {
		output = config.Output.Results
	}
	if err := report.WriteResults(output, idColumn, results, dist.MultiLocus()); err != nil {
		return err
	}
	slog.InfoContext(ctx, "results saved", "path", output, "samples", dist.Samples)

	txt := flagTxt
	if txt == "" {
		txt = config.Output.Distribution
	}
	if txt != "" {
		f, err := os.Create(txt)
		if err != nil {
			return fmt.Errorf("creating distribution %s: %w", txt, err)
		}
		if err := report.WriteDistribution(f, dist); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing distribution %s: %w", txt, err)
		}
		slog.InfoContext(ctx, "distribution saved", "path", txt)
	}
	return nil
}

// references picks the classifier references: -t flags win over the config
// loci.
func references(config model.Config) ([]model.Reference, error) {
	if len(flagTm) == 0 {
		refs := config.References()
		if len(refs) == 0 {
			return nil, fmt.Errorf("no reference Tm: use --tm or set loci in %s", configPath)
		}
		return refs, nil
	}
	refs := make([]model.Reference, 0, len(flagTm))
	for _, arg := range flagTm {
		ref, err := model.ParseReference(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// outputSink returns stdout when path is empty, otherwise the created file.
// The returned close function is a no-op for stdout.
func outputSink(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output %s: %w", path, err)
	}
	return f, f.Close, nil
}

func logStats(ctx context.Context, counter *stats.Stats) {
	for key, value := range counter.Stats() {
		slog.DebugContext(ctx, "run counter", "name", key, "value", value)
	}
}
