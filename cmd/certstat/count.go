package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spektr-org/certstat/engine"
	"github.com/spektr-org/certstat/ingest"
	"github.com/spektr-org/certstat/report"
	"github.com/spektr-org/certstat/schema"
)

// runCount ingests the input directory and writes one report per feature.
// Any error aborts before a report is put in place.
func (a *app) runCount(cmd *cobra.Command) error {
	start := time.Now()

	format, err := report.ParseFormat(a.v.GetString("format"))
	if err != nil {
		return err
	}
	topK := a.v.GetInt("top")
	if topK < 0 {
		return fmt.Errorf("--top must not be negative, got %d", topK)
	}

	reg, err := schema.LoadRegistry(a.fs, a.v.GetString("features"))
	if err != nil {
		return err
	}
	run, err := engine.NewRun(reg, engine.WithTopK(topK))
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	workers := a.v.GetInt("workers")
	progress := newProgress(cmd.ErrOrStderr(), a.v.GetBool("quiet"), workers)

	agg := ingest.New(
		ingest.WithFs(a.fs),
		ingest.WithWorkers(workers),
		ingest.WithMetrics(ingest.NewMetrics(registry)),
		ingest.WithProgress(progress.Handle),
	)

	files, err := agg.IngestDir(cmd.Context(), a.v.GetString("input"), run)
	if err != nil {
		return err
	}

	paths, err := report.WriteAll(a.fs, a.v.GetString("output"), run.Reports(), run.TopK(), format)
	if err != nil {
		return err
	}

	if path := a.v.GetString("metrics-file"); path != "" {
		if err := prometheus.WriteToTextfile(path, registry); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
	}

	log.Info().
		Int("files", len(files)).
		Int("reports", len(paths)).
		Dur("duration", time.Since(start)).
		Msg("run complete")

	if !a.v.GetBool("quiet") {
		for _, p := range paths {
			printSuccess(cmd.ErrOrStderr(), "Wrote "+p)
		}
	}
	return nil
}
