// internal/status/batch.go
package status

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jackchuka/reponest/internal/model"
)

// DefaultBatchLimit bounds concurrent readers in ExtractBatch when the
// caller passes no limit.
const DefaultBatchLimit = 8

// ExtractBatch reads every path with at most limit reads in flight.
// Results keep input order and per-repository failures are carried in
// Info.Err; the returned error is only ever the context's.
func ExtractBatch(ctx context.Context, r Reader, paths []string, limit int) ([]model.Info, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	infos := make([]model.Info, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, limit)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			// A free semaphore slot can win the select below even when
			// ctx is already cancelled.
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			infos[i] = r.Read(ctx, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return infos, nil
}
