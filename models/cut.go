package models

import (
	"slices"

	"github.com/teranos/phi/errors"
)

// Cut is a directional partition: the Partition says which parts are
// separated, the Direction says which temporal relation between them is
// severed.
//
// For every part, with (from, to) = direction.Order(mechanism, purview), the
// cut severs every connection from an index in `from` to an index of the
// cut that is not in `to`.
type Cut struct {
	direction Direction
	partition Partition
}

// NewCut wraps partition with direction.
func NewCut(direction Direction, partition Partition) Cut {
	return Cut{direction: direction, partition: partition}
}

// NullCut returns the identity cut over indices: a single bidirectional
// part whose mechanism and purview are both the full index set. It severs
// nothing.
func NullCut(indices []int) Cut {
	sorted := cloneInts(indices)
	slices.Sort(sorted)
	return Cut{
		direction: Bidirectional,
		partition: MustPartition(NewPart(sorted, sorted)),
	}
}

// Direction returns the cut's direction tag.
func (c Cut) Direction() Direction { return c.direction }

// Partition returns the cut's partition.
func (c Cut) Partition() Partition { return c.partition }

// Indices returns the sorted union of the partition's indices.
func (c Cut) Indices() []int { return c.partition.Indices() }

// IsNull reports whether the cut severs no connections.
func (c Cut) IsNull() bool {
	severs := false
	c.eachSevered(func(int, int) bool {
		severs = true
		return false
	})
	return !severs
}

// eachSevered calls fn for every severed (from, to) pair until fn returns
// false. Pairs may repeat for bidirectional cuts.
func (c Cut) eachSevered(fn func(from, to int) bool) {
	indices := c.partition.indices
	for _, dir := range c.direction.components() {
		for _, part := range c.partition.parts {
			from, to := dir.Order(part.mechanism, part.purview)
			for _, i := range from {
				for _, j := range indices {
					if slices.Contains(to, j) {
						continue
					}
					if !fn(i, j) {
						return
					}
				}
			}
		}
	}
}

func (c Cut) minSize() int {
	if len(c.partition.indices) == 0 {
		return 0
	}
	return c.partition.indices[len(c.partition.indices)-1] + 1
}

// CutMatrix returns the n×n matrix of connections this cut severs.
// Entry [i][j] is true when the connection i→j is severed.
func (c Cut) CutMatrix(n int) ([][]bool, error) {
	if n < c.minSize() {
		return nil, errors.NewInvalidRequestError("cut over %v needs a matrix of size >= %d, got %d", c.partition.indices, c.minSize(), n)
	}
	m := make([][]bool, n)
	for i := range m {
		m[i] = make([]bool, n)
	}
	c.eachSevered(func(i, j int) bool {
		m[i][j] = true
		return true
	})
	return m, nil
}

// ApplyCut returns a copy of the square connectivity matrix cm with every
// connection severed by this cut set to zero. cm is not modified.
func (c Cut) ApplyCut(cm [][]int) ([][]int, error) {
	n := len(cm)
	for i, row := range cm {
		if len(row) != n {
			return nil, errors.NewInvalidRequestError("connectivity matrix is not square: row %d has %d columns, want %d", i, len(row), n)
		}
	}
	mask, err := c.CutMatrix(n)
	if err != nil {
		return nil, err
	}
	out := make([][]int, n)
	for i, row := range cm {
		out[i] = slices.Clone(row)
		for j := range row {
			if mask[i][j] {
				out[i][j] = 0
			}
		}
	}
	return out, nil
}

// SplitsMechanism reports whether the cut severs any connection whose source
// and sink both lie in mechanism.
func (c Cut) SplitsMechanism(mechanism []int) bool {
	split := false
	c.eachSevered(func(i, j int) bool {
		if slices.Contains(mechanism, i) && slices.Contains(mechanism, j) {
			split = true
			return false
		}
		return true
	})
	return split
}

// AllCutMechanisms returns every non-empty subset of the cut's indices that
// the cut splits, ordered by size and then lexicographically.
func (c Cut) AllCutMechanisms() [][]int {
	var out [][]int
	for _, m := range Powerset(c.partition.indices) {
		if c.SplitsMechanism(m) {
			out = append(out, m)
		}
	}
	return out
}

// Powerset returns every non-empty subset of indices, ordered by size and
// then lexicographically by position in indices.
func Powerset(indices []int) [][]int {
	var out [][]int
	for k := 1; k <= len(indices); k++ {
		out = appendCombinations(out, indices, k)
	}
	return out
}

func appendCombinations(out [][]int, xs []int, k int) [][]int {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]int, k)
		for i, p := range idx {
			combo[i] = xs[p]
		}
		out = append(out, combo)

		// Advance the rightmost position that still has room.
		i := k - 1
		for i >= 0 && idx[i] == len(xs)-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Equal reports whether both direction and partition match.
func (c Cut) Equal(o Cut) bool {
	return c.direction == o.direction && c.partition.Equal(o.partition)
}

// Digest returns the content digest of the cut, salted so that it never
// equals the digest of the bare partition.
func (c Cut) Digest() [32]byte {
	return NewDigester("cut").
		WriteTag(byte(c.direction)).
		WriteDigest(c.partition.Digest()).
		Sum()
}

// Hash returns a uint64 hash consistent with Equal.
func (c Cut) Hash() uint64 { return HashOf(c.Digest()) }

// Key returns the base58 digest, usable as a map or cache key.
func (c Cut) Key() string { return KeyOf(c.Digest()) }

func (c Cut) String() string {
	if c.direction == Bidirectional && c.IsNull() {
		return "NullCut" + formatIndices(c.partition.indices)
	}
	return "Cut(" + c.direction.String() + ", " + c.partition.String() + ")"
}
