package run

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nwillems/confluence-lifecycle/models"
	"github.com/nwillems/confluence-lifecycle/pkg/lifecycle"
)

// job is a single page to classify.
type job struct {
	page models.PageSummary
}

// result holds the outcome of classifying one page.
type result struct {
	page  models.PageSummary
	state *models.PageState
	err   error
}

// classifyAll runs state classification for every page across a bounded
// worker pool and blocks until every classification has finished. The
// classifications are independent reads, so no ordering is required between
// them.
func classifyAll(ctx context.Context, logger *slog.Logger, classifier *lifecycle.Classifier, pages []models.PageSummary, workers int) []result {
	var wg sync.WaitGroup
	jobs := make(chan job, len(pages))
	results := make(chan result, len(pages))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go classifyWorker(ctx, w, logger, classifier, &wg, jobs, results)
	}

	for _, page := range pages {
		jobs <- job{page: page}
	}
	close(jobs)

	wg.Wait()
	close(results)

	all := make([]result, 0, len(pages))
	for r := range results {
		all = append(all, r)
	}
	return all
}

// classifyWorker is a goroutine that classifies pages from the jobs channel
// and sends outcomes to the results channel.
func classifyWorker(ctx context.Context, id int, logger *slog.Logger, classifier *lifecycle.Classifier, wg *sync.WaitGroup, jobs <-chan job, results chan<- result) {
	defer wg.Done()
	for j := range jobs {
		state, err := classifier.Classify(ctx, j.page)
		if err != nil {
			logger.Error("Error classifying page", "worker_id", id, "page_id", j.page.ID, "error", err)
			results <- result{page: j.page, err: err}
			continue // Get next job
		}

		logger.Debug("Classified page", "worker_id", id, "page_id", j.page.ID, "phase", state.Phase.String())
		results <- result{page: j.page, state: state}
	}
}
