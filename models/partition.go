package models

import (
	"slices"
	"strings"

	"github.com/teranos/phi/errors"
)

// Partition is an ordered sequence of Parts describing how a mechanism and
// purview index set is split.
//
// No two parts may claim the same mechanism index, and no two parts may
// claim the same purview index. The same index may appear in one part's
// mechanism and another part's purview.
type Partition struct {
	parts   []Part
	indices []int
}

// NewPartition validates parts and builds a Partition. Parts are kept in the
// given order.
func NewPartition(parts ...Part) (Partition, error) {
	mechOwner := make(map[int]int)
	purvOwner := make(map[int]int)
	for i, p := range parts {
		if err := claim(mechOwner, p.mechanism, i, "mechanism"); err != nil {
			return Partition{}, err
		}
		if err := claim(purvOwner, p.purview, i, "purview"); err != nil {
			return Partition{}, err
		}
	}

	owned := make([]Part, len(parts))
	for i, p := range parts {
		owned[i] = NewPart(p.mechanism, p.purview)
	}
	return Partition{parts: owned, indices: unionIndices(owned)}, nil
}

// MustPartition is NewPartition for literals and generators that construct
// valid partitions by design. It panics on an invalid partition.
func MustPartition(parts ...Part) Partition {
	p, err := NewPartition(parts...)
	if err != nil {
		panic(err)
	}
	return p
}

func claim(owner map[int]int, indices []int, part int, role string) error {
	for _, idx := range indices {
		if idx < 0 {
			return errors.NewInvalidPartitionError("negative %s index %d in part %d", role, idx, part)
		}
		if prev, ok := owner[idx]; ok {
			return errors.NewInvalidPartitionError("%s index %d claimed by parts %d and %d", role, idx, prev, part)
		}
		owner[idx] = part
	}
	return nil
}

func unionIndices(parts []Part) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, p := range parts {
		for _, xs := range [][]int{p.mechanism, p.purview} {
			for _, x := range xs {
				if _, ok := seen[x]; !ok {
					seen[x] = struct{}{}
					out = append(out, x)
				}
			}
		}
	}
	slices.Sort(out)
	return out
}

// Len returns the number of parts.
func (p Partition) Len() int { return len(p.parts) }

// Part returns the i-th part. It panics if i is out of range, like slice indexing.
func (p Partition) Part(i int) Part { return p.parts[i] }

// Parts returns a copy of the parts slice.
func (p Partition) Parts() []Part { return slices.Clone(p.parts) }

// Indices returns the sorted union of all mechanism and purview indices.
// It is computed once at construction.
func (p Partition) Indices() []int { return cloneInts(p.indices) }

// Equal reports sequence equality of the parts.
func (p Partition) Equal(o Partition) bool {
	return slices.EqualFunc(p.parts, o.parts, Part.Equal)
}

// Normalize returns the partition with its parts sorted lexicographically.
// Two partitions that differ only in part order normalize to equal values.
func (p Partition) Normalize() Partition {
	parts := slices.Clone(p.parts)
	slices.SortStableFunc(parts, Part.Compare)
	return Partition{parts: parts, indices: p.indices}
}

// Digest returns the content digest of the partition.
func (p Partition) Digest() [32]byte {
	d := NewDigester("partition")
	d.WriteInts([]int{len(p.parts)})
	for _, part := range p.parts {
		d.WriteInts(part.mechanism).WriteInts(part.purview)
	}
	return d.Sum()
}

// Hash returns a uint64 hash consistent with Equal.
func (p Partition) Hash() uint64 { return HashOf(p.Digest()) }

// String renders the parts joined by " × ".
func (p Partition) String() string {
	strs := make([]string, len(p.parts))
	for i, part := range p.parts {
		strs[i] = part.String()
	}
	return strings.Join(strs, " × ")
}
