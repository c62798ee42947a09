package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/mdx/internal/models"
	"github.com/desertthunder/mdx/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for a library export.
type ExportOpts struct {
	NumWorkers int     // Concurrent detail fetches (default: 5)
	RateLimit  float64 // Requests per second (default: 5)
}

// ExportItemResult records the outcome for a single manga during export.
type ExportItemResult struct {
	ID    string
	Title string
	Manga *models.Manga
	Err   error
}

// ExportResult contains all data from a library export.
type ExportResult struct {
	Total     int
	Succeeded int
	Failed    int
	Manga     []models.Manga     // Enriched entries, in followed-list order
	Errors    []ExportItemResult // Per-item detail fetch failures
}

type exportJob struct {
	index int
	manga models.Manga
}

type exportOutcome struct {
	index  int
	result ExportItemResult
}

// Export fetches the followed list and enriches each entry with author and
// description details, producing the viewer's library document.
//
// Detail fetches run through a bounded worker pool behind a rate limiter.
// Per-item failures fall back to the undetailed entry so one flaky lookup
// never loses the row.
func (e *LibraryEngine) Export(ctx context.Context, prog chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: source service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	e.sendProgress(prog, fetchSourceUpdate(1, 1, e.source.Name()))
	followed, err := e.source.FollowedManga(ctx)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		Total: len(followed),
		Manga: make([]models.Manga, len(followed)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan exportJob, len(followed))
	outcomes := make(chan exportOutcome, len(followed))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, limiter, jobs, outcomes)
	}

	for i, m := range followed {
		jobs <- exportJob{index: i, manga: m}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	completed := 0
	for outcome := range outcomes {
		completed++

		if outcome.result.Err != nil {
			result.Failed++
			result.Errors = append(result.Errors, outcome.result)
			// Keep the undetailed entry rather than dropping the row.
			result.Manga[outcome.index] = followed[outcome.index]
			e.sendProgress(prog, exportFailedUpdate(completed, result.Total, outcome.result.Title, outcome.result.Err))
			continue
		}

		result.Succeeded++
		result.Manga[outcome.index] = *outcome.result.Manga
		e.sendProgress(prog, exportingUpdate(completed, result.Total, outcome.result.Title))
	}

	return result, nil
}

// exportWorker fetches manga details from the jobs channel.
func (e *LibraryEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan exportJob,
	outcomes chan<- exportOutcome,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			outcomes <- exportOutcome{
				index: job.index,
				result: ExportItemResult{
					ID:    job.manga.ID,
					Title: job.manga.Title,
					Err:   ctx.Err(),
				},
			}
			continue
		default:
		}

		if err := limiter.Wait(ctx); err != nil {
			outcomes <- exportOutcome{
				index: job.index,
				result: ExportItemResult{
					ID:    job.manga.ID,
					Title: job.manga.Title,
					Err:   err,
				},
			}
			continue
		}

		detailed, err := e.source.Manga(ctx, job.manga.ID)
		outcomes <- exportOutcome{
			index: job.index,
			result: ExportItemResult{
				ID:    job.manga.ID,
				Title: job.manga.Title,
				Manga: detailed,
				Err:   err,
			},
		}
	}
}

// DefaultExportPath names an export file with the current epoch.
func DefaultExportPath() string {
	return fmt.Sprintf("library_%d.json", time.Now().Unix())
}
