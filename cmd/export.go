package main

import (
	"context"

	"github.com/desertthunder/mdx/internal/formatter"
	"github.com/desertthunder/mdx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ExportRun fetches the followed list with full details and writes a library
// JSON file for the viewer.
func (r *Runner) ExportRun(ctx context.Context, cmd *cli.Command) error {
	if err := r.authenticateSource(ctx, cmd); err != nil {
		return err
	}
	r.applyPageLimit(cmd)

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = tasks.DefaultExportPath()
	}

	r.logger.Info("starting export", "output", outputPath)
	r.writePlain("Exporting followed manga...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchSource:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ExportManga:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Export(ctx, progressCh, tasks.ExportOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	written, err := formatter.WriteLibraryJSON(result.Manga, outputPath)
	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Followed: %d\n", result.Total)
	r.writePlain("Detailed: %d\n", result.Succeeded)
	r.writePlain("Fell back to bare entries: %d\n", result.Failed)
	r.writePlain("Library written to %s\n", written)

	if len(result.Errors) > 0 {
		r.writePlain("\nDetail fetch failures:\n")
		for i, item := range result.Errors {
			r.writePlain("  %d. %s: %v\n", i+1, item.Title, item.Err)
		}
	}

	return nil
}
