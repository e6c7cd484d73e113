package system

import (
	"github.com/teranos/phi/models"
)

// ConceptStyleSystem presents a subsystem asymmetrically: the cause side and
// the effect side are separate subsystems, and only the side selected by
// Direction carries the cut. The other side carries the base's null cut.
//
// Placement follows the direction argument, not the cut's own direction.
// Both views are independent values, so cause and effect evaluation can run
// concurrently.
type ConceptStyleSystem struct {
	base      *Subsystem
	direction models.Direction
	cut       models.Cut
}

// NewConceptStyleSystem wraps base. It never fails and has no side effects.
func NewConceptStyleSystem(base *Subsystem, direction models.Direction, cut models.Cut) *ConceptStyleSystem {
	return &ConceptStyleSystem{base: base, direction: direction, cut: cut}
}

// Base returns the wrapped subsystem.
func (c *ConceptStyleSystem) Base() *Subsystem { return c.base }

// Direction returns the side that carries the cut.
func (c *ConceptStyleSystem) Direction() models.Direction { return c.direction }

// Cut returns the cut under consideration.
func (c *ConceptStyleSystem) Cut() models.Cut { return c.cut }

// CauseSystem is the base seen through the cut when Direction is Past, and
// through the null cut otherwise.
func (c *ConceptStyleSystem) CauseSystem() *Subsystem {
	if c.direction == models.Past {
		return c.base.WithCut(c.cut)
	}
	return c.base.WithCut(c.base.NullCut())
}

// EffectSystem is the base seen through the cut when Direction is Future,
// and through the null cut otherwise.
func (c *ConceptStyleSystem) EffectSystem() *Subsystem {
	if c.direction == models.Future {
		return c.base.WithCut(c.cut)
	}
	return c.base.WithCut(c.base.NullCut())
}

// ApplyCut returns a new view of the same base and direction under cut.
func (c *ConceptStyleSystem) ApplyCut(cut models.Cut) *ConceptStyleSystem {
	return NewConceptStyleSystem(c.base, c.direction, cut)
}

// Len returns the number of nodes in the base subsystem.
func (c *ConceptStyleSystem) Len() int { return c.base.Len() }

// NodeIndices returns the base subsystem's node indices.
func (c *ConceptStyleSystem) NodeIndices() []int { return c.base.NodeIndices() }

// CutIndices returns the base subsystem's cut indices.
func (c *ConceptStyleSystem) CutIndices() []int { return c.base.CutIndices() }

// CutMechanisms returns the mechanisms the cut splits.
func (c *ConceptStyleSystem) CutMechanisms() [][]int { return c.cut.AllCutMechanisms() }

// Equal compares base, direction and cut.
func (c *ConceptStyleSystem) Equal(o *ConceptStyleSystem) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.direction == o.direction && c.cut.Equal(o.cut) && c.base.Equal(o.base)
}

func (c *ConceptStyleSystem) String() string {
	return "ConceptStyleSystem(" + c.base.String() + ", " + c.direction.String() + ", " + c.cut.String() + ")"
}
