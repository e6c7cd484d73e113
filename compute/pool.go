package compute

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/internal/util"
	"github.com/teranos/phi/models"
	"github.com/teranos/phi/system"
)

// worker evaluates encoded tasks. It shares nothing with other workers
// except the evaluator.
type worker struct {
	evaluator Evaluator
	precision int
}

// run decodes a task, evaluates it and returns the encoded BigMip. Panics in
// the evaluator are returned as errors.
func (w worker) run(ctx context.Context, data []byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.AssertionFailedf("evaluator panicked: %v", r)
		}
	}()

	var t task
	if err := models.Decode(data, &t); err != nil {
		return nil, err
	}
	if t.Subsystem == nil {
		return nil, errors.NewInvalidRequestError("task %d has no subsystem", t.Index)
	}

	css := system.NewConceptStyleSystem(t.Subsystem, t.Direction, t.Cut)
	phi, err := w.evaluator.Integration(ctx, css)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(phi) || math.IsInf(phi, 0) || phi < 0 {
		return nil, errors.Newf("evaluator returned invalid phi %v for %s", phi, t.Cut)
	}

	return models.Encode(&BigMip{
		Phi:       util.RoundTo(phi, w.precision),
		Subsystem: t.Subsystem,
		Cut:       t.Cut,
	})
}

// evaluate runs one encoded task and decodes the result.
func (w worker) evaluate(ctx context.Context, index int, data []byte) (*BigMip, error) {
	out, err := w.run(ctx, data)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluate candidate %d", index)
	}
	var mip BigMip
	if err := models.Decode(out, &mip); err != nil {
		return nil, errors.Wrapf(err, "decode result of candidate %d", index)
	}
	return &mip, nil
}

// pool fans tasks out to at most size concurrent workers. Every dispatched
// task runs to completion; the first error is returned after all finish.
type pool struct {
	worker worker
	size   int
}

func (p pool) evaluate(ctx context.Context, tasks [][]byte) ([]*BigMip, error) {
	results := make([]*BigMip, len(tasks))

	var g errgroup.Group
	g.SetLimit(p.size)
	for i, data := range tasks {
		g.Go(func() error {
			mip, err := p.worker.evaluate(ctx, i, data)
			if err != nil {
				return err
			}
			results[i] = mip
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// better reports whether candidate beats best under the (Φ, index) order.
// Candidates arrive in index order, so ties keep the earlier one.
func better(candidate, best *BigMip) bool {
	return best == nil || candidate.Phi < best.Phi
}
