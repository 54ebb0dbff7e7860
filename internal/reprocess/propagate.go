package reprocess

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"
)

// Mode selects how a shop mapping change treats existing product-level
// overrides for the same attribute.
type Mode string

const (
	// ModeApplyAll removes product-level overrides for the attribute first,
	// so the new shop mapping takes effect everywhere.
	ModeApplyAll Mode = "apply_all"
	// ModePreserveOverrides reprocesses only products without an override
	// for the attribute.
	ModePreserveOverrides Mode = "preserve_overrides"
)

// ErrUnknownMode rejects a propagation mode outside the two defined ones.
var ErrUnknownMode = errors.New("reprocess: unknown propagation mode")

// ParseMode converts a mode string from the CLI or an API request.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeApplyAll, ModePreserveOverrides:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Result tallies one propagation run. Counters are safe for concurrent
// updates from batch workers.
type Result struct {
	Processed atomic.Int64
	Succeeded atomic.Int64
	Failed    atomic.Int64

	mu     sync.Mutex
	errors map[string]string
}

func newResult() *Result {
	return &Result{errors: make(map[string]string)}
}

func (r *Result) fail(productID string, err error) {
	r.Failed.Inc()
	r.mu.Lock()
	r.errors[productID] = err.Error()
	r.mu.Unlock()
}

// Errors returns the per-product failure messages collected during the run.
func (r *Result) Errors() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.errors))
	for k, v := range r.errors {
		out[k] = v
	}
	return out
}

// PropagateShopMappingChange reprocesses the shop's products after a mapping
// change for one attribute. Products are walked in bounded batches; within a
// batch they reprocess concurrently. A failing product is tallied and the run
// continues; only a structural failure (listing products, context cancel)
// aborts it.
func (o *Orchestrator) PropagateShopMappingChange(ctx context.Context, shopID, attribute string, mode Mode) (*Result, error) {
	if _, err := o.registry.Get(attribute); err != nil {
		return nil, err
	}
	if mode != ModeApplyAll && mode != ModePreserveOverrides {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	res := newResult()

	if mode == ModeApplyAll {
		removed, err := o.store.RemoveOverridesForAttribute(ctx, shopID, attribute)
		if err != nil {
			return res, err
		}
		if removed > 0 {
			o.log.Infow("removed product overrides before propagation",
				"shop_id", shopID, "attribute", attribute, "removed", removed)
		}
	}

	afterID := ""
	for {
		var (
			ids []string
			err error
		)
		if mode == ModePreserveOverrides {
			ids, err = o.store.ListProductIDsWithoutOverride(ctx, shopID, attribute, afterID, o.cfg.BatchSize)
		} else {
			ids, err = o.store.ListProductIDs(ctx, shopID, afterID, o.cfg.BatchSize)
		}
		if err != nil {
			return res, err
		}
		if len(ids) == 0 {
			break
		}

		o.reprocessBatch(ctx, ids, res)
		if err := ctx.Err(); err != nil {
			return res, err
		}

		afterID = ids[len(ids)-1]
		if len(ids) < o.cfg.BatchSize {
			break
		}
	}

	o.log.Infow("propagation finished",
		"shop_id", shopID, "attribute", attribute, "mode", string(mode),
		"processed", res.Processed.Load(), "succeeded", res.Succeeded.Load(), "failed", res.Failed.Load())
	return res, nil
}

func (o *Orchestrator) reprocessBatch(ctx context.Context, ids []string, res *Result) {
	sem := make(chan struct{}, o.cfg.BatchConcurrency)
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(productID string) {
			defer wg.Done()
			defer func() { <-sem }()

			res.Processed.Inc()
			if err := o.limiter.Wait(ctx); err != nil {
				res.fail(productID, err)
				return
			}
			if err := o.Reprocess(ctx, productID); err != nil {
				res.fail(productID, err)
				o.log.Warnw("reprocess failed during propagation",
					"product_id", productID, "error", err)
				return
			}
			res.Succeeded.Inc()
		}(id)
	}
	wg.Wait()
}
