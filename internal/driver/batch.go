// Package driver classifies batches of signatures. Parsing builds fresh
// descriptor instances per signature and every Call owns its own State, so
// entries are independent and safe to classify concurrently.
package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"rvcc/internal/cc"
	"rvcc/internal/sigparse"
	"rvcc/internal/target"
)

// Result is the outcome for one signature. Err is a parse or classification
// failure for that entry alone; other entries are unaffected.
type Result struct {
	Signature string
	State     *cc.State
	Err       error
}

// ClassifyAll parses and classifies every signature on the given target,
// preserving input order. Per-entry failures land in Result.Err; only context
// cancellation aborts the batch.
func ClassifyAll(ctx context.Context, t target.Target, sigs []string) ([]Result, error) {
	m, err := t.Machine()
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(sigs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, raw := range sigs {
		i, raw := i, raw
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = classifyOne(m, t.XLen, raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func classifyOne(m *cc.Machine, xlen int, raw string) Result {
	res := Result{Signature: raw}
	sig, err := sigparse.Parse(raw, xlen)
	if err != nil {
		res.Err = err
		return res
	}
	res.State, res.Err = m.Call(sig.Args, sig.Ret)
	return res
}
