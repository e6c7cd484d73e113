// Package connectivity is a structural Evaluator: it scores a cut system by
// how many connections inside the subsystem its cuts sever. It needs no
// transition probabilities, so it serves as the CLI's default evaluator and
// as a deterministic fixture for the search.
package connectivity

import (
	"context"

	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/system"
)

// Name identifies this evaluator in cache keys.
const Name = "connectivity"

// Evaluator counts severed connections.
type Evaluator struct{}

// New returns a connectivity evaluator.
func New() Evaluator { return Evaluator{} }

// Name implements compute.Named.
func (Evaluator) Name() string { return Name }

// Integration returns the number of connections among the subsystem's nodes
// removed by the cause-side cut plus those removed by the effect-side cut.
func (Evaluator) Integration(ctx context.Context, css *system.ConceptStyleSystem) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cause, err := Severed(css.CauseSystem())
	if err != nil {
		return 0, errors.Wrap(err, "cause system")
	}
	effect, err := Severed(css.EffectSystem())
	if err != nil {
		return 0, errors.Wrap(err, "effect system")
	}
	return float64(cause + effect), nil
}

// Severed counts connections between nodes of sub that its cut removes.
func Severed(sub *system.Subsystem) (int, error) {
	cut, err := sub.ConnectivityMatrix()
	if err != nil {
		return 0, err
	}
	full := sub.Network().CM()
	nodes := sub.NodeIndices()

	severed := 0
	for _, i := range nodes {
		for _, j := range nodes {
			severed += full[i][j] - cut[i][j]
		}
	}
	return severed, nil
}
