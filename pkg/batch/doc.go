// Package batch runs N independent lookups against a rate-limited upstream
// with bounded concurrency and partial-failure isolation.
//
// The upstream enforces a request budget, so bulk tools cannot simply fire
// one goroutine per item. This package implements grouped execution with a
// weighted semaphore and a pause between groups to keep bulk operations
// under the limit.
//
// Example usage:
//
//	result, err := batch.Run(ctx, titles, batch.NormalizedKey,
//		func(ctx context.Context, title string) (*trakt.Movie, error) {
//			return client.SearchMovie(ctx, title, 0)
//		}, batch.DefaultConfig())
//
// The executor:
//   - Deduplicates inputs by normalized key (one call per unique key,
//     fanned back out to every original position)
//   - Caps in-flight worker calls at MaxConcurrency
//   - Pauses InterBatchDelay between groups of BatchSize
//   - Records per-item failures without aborting siblings or later groups
//   - Returns succeeded and failed entries sorted by input position
//
// The executor does not retry failed items; pacing is preventive, not
// corrective. It is also agnostic to whether a worker call hits cache or
// network: a cache hit simply releases its concurrency slot sooner.
package batch
