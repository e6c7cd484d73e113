package compute

import (
	"context"

	"github.com/teranos/phi/system"
)

// Evaluator scores a cut system. Integration returns how much integrated
// information the base subsystem loses when seen through css: css carries
// the candidate cut on the side named by css.Direction() and the null cut on
// the other.
//
// Implementations must be pure: the same input always yields the same value,
// and calls may run concurrently.
type Evaluator interface {
	Integration(ctx context.Context, css *system.ConceptStyleSystem) (float64, error)
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ctx context.Context, css *system.ConceptStyleSystem) (float64, error)

// Integration implements Evaluator.
func (f EvaluatorFunc) Integration(ctx context.Context, css *system.ConceptStyleSystem) (float64, error) {
	return f(ctx, css)
}
