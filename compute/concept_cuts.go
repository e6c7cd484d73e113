package compute

import (
	"iter"

	"github.com/teranos/phi/models"
	"github.com/teranos/phi/partition"
)

// ConceptCuts yields one Cut in direction per partition gen produces for
// (nodes, nodes), in the generator's order and without deduplication.
func ConceptCuts(direction models.Direction, nodes []int, gen partition.Generator) iter.Seq[models.Cut] {
	return func(yield func(models.Cut) bool) {
		for p := range gen(nodes, nodes) {
			if !yield(models.NewCut(direction, p)) {
				return
			}
		}
	}
}
