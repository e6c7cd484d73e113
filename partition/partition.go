// Package partition enumerates candidate partitions of a mechanism and its
// purview.
//
// A strategy is a Generator selected by identifier (see Get). Generators are
// lazy and deterministic: the same inputs always produce the same sequence
// in the same order.
package partition

import (
	"iter"
	"slices"
	"strings"

	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/models"
)

// Generator yields candidate partitions of mechanism and purview.
type Generator func(mechanism, purview []int) iter.Seq[models.Partition]

// Strategy identifiers accepted by Get and by the compute.partition_type setting.
const (
	Bi  = "BI"
	Tri = "TRI"
	All = "ALL"
)

var registry = map[string]Generator{
	Bi:  MipBipartitions,
	Tri: WedgePartitions,
	All: AllPartitions,
}

// Get returns the generator registered for partitionType (case-insensitive).
func Get(partitionType string) (Generator, error) {
	gen, ok := registry[strings.ToUpper(partitionType)]
	if !ok {
		return nil, errors.WithHintf(
			errors.NewInvalidRequestError("unknown partition type %q", partitionType),
			"valid partition types: %s", strings.Join(Types(), ", "))
	}
	return gen, nil
}

// Types returns the registered strategy identifiers, sorted.
func Types() []string {
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// MipBipartitions yields every bipartition of the mechanism paired with a
// directed bipartition of the purview, skipping pairings that leave a part
// completely empty.
func MipBipartitions(mechanism, purview []int) iter.Seq[models.Partition] {
	return func(yield func(models.Partition) bool) {
		for _, n := range Bipartition(mechanism) {
			for _, d := range DirectedBipartition(purview) {
				if (len(n[0]) == 0 && len(d[0]) == 0) || (len(n[1]) == 0 && len(d[1]) == 0) {
					continue
				}
				p := models.MustPartition(models.NewPart(n[0], d[0]), models.NewPart(n[1], d[1]))
				if !yield(p) {
					return
				}
			}
		}
	}
}

// WedgePartitions yields tripartitions that strictly split the mechanism and
// let a subset of the purview split off into a third, mechanism-free part:
//
//	 A     B     []
//	---- , ---- , ----
//	 B     []    A
//
// Parts are normalized so each distinct partition appears once, and
// partitions that collapse into a causally equivalent coarser partition are
// skipped.
func WedgePartitions(mechanism, purview []int) iter.Seq[models.Partition] {
	return func(yield func(models.Partition) bool) {
		yielded := make(map[[32]byte]struct{})
		for _, n := range Bipartition(mechanism) {
			for _, d := range DirectedTripartition(purview) {
				if !validWedge(n, d) {
					continue
				}
				tripart := models.MustPartition(
					models.NewPart(n[0], d[0]),
					models.NewPart(n[1], d[1]),
					models.NewPart(nil, d[2]),
				).Normalize()

				if compressible(tripart) {
					continue
				}
				key := tripart.Digest()
				if _, seen := yielded[key]; seen {
					continue
				}
				yielded[key] = struct{}{}
				if !yield(tripart) {
					return
				}
			}
		}
	}
}

func validWedge(n [2][]int, d [3][]int) bool {
	return (len(n[0]) > 0 || len(d[0]) > 0) &&
		(len(n[1]) > 0 || len(d[1]) > 0) &&
		((len(n[0]) > 0 && len(n[1]) > 0) || len(d[0]) == 0 || len(d[1]) == 0)
}

// compressible reports whether two non-empty parts could be merged without
// changing the partition's causal meaning, e.g. A/∅ × B/∅ × ∅/CD ≡ AB/∅ × ∅/CD.
func compressible(p models.Partition) bool {
	for i := 0; i < p.Len(); i++ {
		for j := i + 1; j < p.Len(); j++ {
			x, y := p.Part(i), p.Part(j)
			if x.IsEmpty() || y.IsEmpty() {
				continue
			}
			if len(x.Mechanism())+len(y.Mechanism()) == 0 || len(x.Purview())+len(y.Purview()) == 0 {
				return true
			}
		}
	}
	return false
}

// AllPartitions yields every k-partition of the mechanism (plus one empty
// mechanism part) paired with every arrangement of a purview partition into
// those parts. Arrangements are emitted in sorted order.
func AllPartitions(mechanism, purview []int) iter.Seq[models.Partition] {
	return func(yield func(models.Partition) bool) {
		for _, mechPartition := range SetPartitions(mechanism) {
			mechParts := append(slices.Clone(mechPartition), nil)
			maxPurviewParts := min(len(purview), len(mechParts))

			for k := 1; k <= maxPurviewParts; k++ {
				for _, purvPartition := range KPartitions(purview, k) {
					blocks := slices.Clone(purvPartition)
					for len(blocks) < len(mechParts) {
						blocks = append(blocks, nil)
					}
					for _, perm := range uniquePermutations(blocks) {
						// Must partition the mechanism, unless the purview is
						// fully cut away from it.
						if slices.Equal(mechParts[0], mechanism) && len(perm[0]) > 0 {
							continue
						}
						parts := make([]models.Part, len(mechParts))
						for i := range mechParts {
							parts[i] = models.NewPart(mechParts[i], perm[i])
						}
						if !yield(models.MustPartition(parts...)) {
							return
						}
					}
				}
			}
		}
	}
}
