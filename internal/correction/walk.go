package correction

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultConcurrency is the number of strings corrected in parallel when no
// limit is configured.
const DefaultConcurrency = 4

// Walk returns a copy of v with fn applied to every string leaf. Objects and
// arrays keep their keys, order and length; any other value is returned as is.
// v is expected to come from encoding/json, so objects are map[string]any and
// arrays are []any.
func Walk(v any, fn func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Walk(item, fn)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Walk(item, fn)
		}
		return out
	case string:
		return fn(val)
	default:
		return v
	}
}

// CorrectValue corrects every string leaf of v with c. Each distinct string is
// sent once, and at most concurrency requests run at a time.
func CorrectValue(ctx context.Context, c Corrector, v any, concurrency int) any {
	if c == nil {
		return v
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var unique []string
	seen := make(map[string]bool)
	Walk(v, func(s string) string {
		if !seen[s] {
			seen[s] = true
			unique = append(unique, s)
		}
		return s
	})
	if len(unique) == 0 {
		return Walk(v, func(s string) string { return s })
	}

	var mu sync.Mutex
	corrected := make(map[string]string, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, s := range unique {
		g.Go(func() error {
			fixed := c.Correct(gctx, s)
			mu.Lock()
			corrected[s] = fixed
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return Walk(v, func(s string) string {
		if fixed, ok := corrected[s]; ok {
			return fixed
		}
		return s
	})
}

// CorrectResume corrects every text field of doc and returns the corrected copy.
func CorrectResume(ctx context.Context, c Corrector, doc *types.ResumeDocument, concurrency int) (*types.ResumeDocument, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}

	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}

	return types.DecodeResume(CorrectValue(ctx, c, tree, concurrency))
}
