package batch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// Worker produces a value for one input, or fails with an error. Each
// invocation is independent; per-call timeouts are the worker's own
// responsibility so one hung call cannot stall a group forever.
type Worker[I, O any] func(ctx context.Context, input I) (O, error)

// KeyFunc derives the dedup key for an input. Inputs sharing a key are
// coalesced into one worker call and one outcome.
type KeyFunc[I any] func(input I) string

// NormalizedKey is the default key derivation for string inputs: trimmed
// and lower-cased, so "Dune " and "dune" are one unit of work.
func NormalizedKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Success records one input position that resolved to a value.
type Success[I, O any] struct {
	// Index is the position in the caller's input list
	Index int `json:"index"`

	// Input is the caller's original input at that position
	Input I `json:"input"`

	// Value is the worker's result
	Value O `json:"value"`
}

// Failure records one input position whose worker call failed.
type Failure[I any] struct {
	Index int `json:"index"`

	Input I `json:"input"`

	// Reason is the stringified worker error
	Reason string `json:"reason"`
}

// Result is the aggregate outcome of a run. Every input index appears in
// exactly one of Succeeded or Failed, each sorted ascending by index.
type Result[I, O any] struct {
	Succeeded []Success[I, O] `json:"succeeded"`
	Failed    []Failure[I]    `json:"failed"`
}

// unit is one deduplicated piece of work with every original position
// that mapped to it.
type unit[I any] struct {
	key     string
	input   I
	indices []int
}

// outcome is the settled result of one unit.
type outcome[O any] struct {
	value O
	err   error
}

// Run executes the worker once per unique input key with at most
// cfg.MaxConcurrency calls in flight, pausing cfg.InterBatchDelay between
// groups of cfg.BatchSize. A worker failure is recorded per item and never
// aborts siblings or later groups; an error return from Run itself means
// the run never started (bad config or missing worker).
func Run[I, O any](ctx context.Context, items []I, keyFn KeyFunc[I], worker Worker[I, O], cfg Config) (*Result[I, O], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, fmt.Errorf("invalid batch config: worker must not be nil")
	}
	if keyFn == nil {
		return nil, fmt.Errorf("invalid batch config: key function must not be nil")
	}

	start := time.Now()
	batchRunsTotal.Inc()

	logger := log.With().
		Str("component", "batch").
		Str("run_id", uuid.NewString()).
		Logger()

	// Deduplicate, retaining first-seen order and the mapping from each
	// unique key back to every original index.
	var order []*unit[I]
	byKey := make(map[string]*unit[I])
	for i, item := range items {
		key := keyFn(item)
		if u, ok := byKey[key]; ok {
			u.indices = append(u.indices, i)
			continue
		}
		u := &unit[I]{key: key, input: item, indices: []int{i}}
		byKey[key] = u
		order = append(order, u)
	}

	groups := (len(order) + cfg.BatchSize - 1) / cfg.BatchSize

	logger.Info().
		Int("items", len(items)).
		Int("unique", len(order)).
		Int("groups", groups).
		Int("max_concurrency", cfg.MaxConcurrency).
		Msg("Starting batch run")

	outcomes := make(map[string]outcome[O], len(order))
	var mu sync.Mutex
	sem := semaphore.NewWeighted(int64(cfg.MaxConcurrency))

	settle := func(u *unit[I], value O, err error) {
		mu.Lock()
		outcomes[u.key] = outcome[O]{value: value, err: err}
		mu.Unlock()
	}

	for gi := 0; gi < groups; gi++ {
		lo := gi * cfg.BatchSize
		hi := lo + cfg.BatchSize
		if hi > len(order) {
			hi = len(order)
		}

		var wg sync.WaitGroup
		for _, u := range order[lo:hi] {
			// Acquiring before spawning keeps start order aligned with
			// deduped input order and caps in-flight calls.
			if err := sem.Acquire(ctx, 1); err != nil {
				var zero O
				settle(u, zero, fmt.Errorf("batch cancelled: %w", err))
				continue
			}

			wg.Add(1)
			go func(u *unit[I]) {
				defer wg.Done()
				defer sem.Release(1)

				value, err := worker(ctx, u.input)
				if err != nil {
					logger.Warn().
						Err(err).
						Str("key", u.key).
						Msg("Batch item failed")
				}
				settle(u, value, err)
			}(u)
		}
		wg.Wait()
		batchGroupsTotal.Inc()

		// Pace before the next group; skipped after the final one.
		if gi < groups-1 && cfg.InterBatchDelay > 0 {
			timer := time.NewTimer(cfg.InterBatchDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
	}

	// Fan each unique outcome back to every original index.
	result := &Result[I, O]{}
	for _, u := range order {
		out := outcomes[u.key]
		for _, idx := range u.indices {
			if out.err != nil {
				result.Failed = append(result.Failed, Failure[I]{
					Index:  idx,
					Input:  items[idx],
					Reason: out.err.Error(),
				})
				continue
			}
			result.Succeeded = append(result.Succeeded, Success[I, O]{
				Index: idx,
				Input: items[idx],
				Value: out.value,
			})
		}
	}

	sort.Slice(result.Succeeded, func(i, j int) bool {
		return result.Succeeded[i].Index < result.Succeeded[j].Index
	})
	sort.Slice(result.Failed, func(i, j int) bool {
		return result.Failed[i].Index < result.Failed[j].Index
	})

	batchItemsTotal.WithLabelValues("succeeded").Add(float64(len(result.Succeeded)))
	batchItemsTotal.WithLabelValues("failed").Add(float64(len(result.Failed)))
	batchDurationSeconds.Observe(time.Since(start).Seconds())

	logger.Info().
		Int("succeeded", len(result.Succeeded)).
		Int("failed", len(result.Failed)).
		Dur("duration", time.Since(start)).
		Msg("Batch run complete")

	return result, nil
}
