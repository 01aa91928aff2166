package lifecycle

import (
	"context"
	"fmt"

	"github.com/nwillems/confluence-lifecycle/models"
)

// PageLister enumerates page summaries in a space one batch at a time.
type PageLister interface {
	ListPages(ctx context.Context, space string, start, limit int) ([]models.PageSummary, error)
}

// DiscoverPages enumerates up to max pages in a space, requesting at most
// limit pages per call. The per-call limit is clamped to max, and
// enumeration stops as soon as a batch comes back short or empty. Any
// transport fault aborts discovery.
func DiscoverPages(ctx context.Context, lister PageLister, space string, max, limit int) ([]models.PageSummary, error) {
	if limit > max {
		limit = max
	}

	var pages []models.PageSummary
	for start := 0; len(pages) < max; start += limit {
		batch, err := lister.ListPages(ctx, space, start, limit)
		if err != nil {
			return nil, fmt.Errorf("discover pages in space %s: %w", space, err)
		}

		if len(batch) == 0 {
			break
		}

		if remaining := max - len(pages); len(batch) > remaining {
			batch = batch[:remaining]
		}
		pages = append(pages, batch...)

		if len(batch) < limit {
			break
		}
	}

	return pages, nil
}
