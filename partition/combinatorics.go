package partition

import (
	"iter"
	"slices"
)

// Bipartition returns every unordered split of seq into two blocks. The
// first split is always (∅, seq). An empty seq has no bipartitions.
func Bipartition(seq []int) [][2][]int {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([][2][]int, 0, 1<<(n-1))
	for i := 0; i < 1<<(n-1); i++ {
		var zero, one []int
		for b := 0; b < n; b++ {
			if (i>>b)&1 == 1 {
				one = append(one, seq[b])
			} else {
				zero = append(zero, seq[b])
			}
		}
		out = append(out, [2][]int{one, zero})
	}
	return out
}

// DirectedBipartition returns every ordered split of seq into two blocks:
// the unordered splits followed by their mirror images in reverse order.
func DirectedBipartition(seq []int) [][2][]int {
	if len(seq) == 0 {
		return nil
	}
	undirected := Bipartition(seq)
	out := slices.Clone(undirected)
	for i := len(undirected) - 1; i >= 0; i-- {
		out = append(out, [2][]int{undirected[i][1], undirected[i][0]})
	}
	return out
}

// DirectedTripartition returns every ordered assignment of seq's elements to
// three blocks, in odometer order with the last element varying fastest.
func DirectedTripartition(seq []int) [][3][]int {
	n := len(seq)
	if n == 0 {
		return nil
	}
	total := 1
	for i := 0; i < n; i++ {
		total *= 3
	}
	out := make([][3][]int, 0, total)
	key := make([]int, n)
	for c := 0; c < total; c++ {
		rem := c
		for i := n - 1; i >= 0; i-- {
			key[i] = rem % 3
			rem /= 3
		}
		var blocks [3][]int
		for i, loc := range key {
			blocks[loc] = append(blocks[loc], seq[i])
		}
		out = append(out, blocks)
	}
	return out
}

// SetPartitions returns every partition of seq into non-empty blocks. Each
// block keeps seq's element order.
func SetPartitions(seq []int) [][][]int {
	var out [][][]int
	for p := range setPartitions(seq) {
		out = append(out, p)
	}
	return out
}

func setPartitions(seq []int) iter.Seq[[][]int] {
	return func(yield func([][]int) bool) {
		if len(seq) == 0 {
			return
		}
		if len(seq) == 1 {
			yield([][]int{{seq[0]}})
			return
		}
		first := seq[0]
		for smaller := range setPartitions(seq[1:]) {
			for i, block := range smaller {
				p := make([][]int, 0, len(smaller))
				p = append(p, smaller[:i]...)
				p = append(p, append([]int{first}, block...))
				p = append(p, smaller[i+1:]...)
				if !yield(p) {
					return
				}
			}
			p := append([][]int{{first}}, smaller...)
			if !yield(p) {
				return
			}
		}
	}
}

// KPartitions returns the partitions of seq into exactly k non-empty blocks.
func KPartitions(seq []int, k int) [][][]int {
	var out [][][]int
	for p := range setPartitions(seq) {
		if len(p) == k {
			out = append(out, p)
		}
	}
	return out
}

// uniquePermutations returns the distinct orderings of blocks, sorted
// lexicographically so repeated empty blocks do not duplicate results.
func uniquePermutations(blocks [][]int) [][][]int {
	var out [][][]int
	var permute func(k int)
	permute = func(k int) {
		if k == len(blocks) {
			out = append(out, slices.Clone(blocks))
			return
		}
		for i := k; i < len(blocks); i++ {
			blocks[k], blocks[i] = blocks[i], blocks[k]
			permute(k + 1)
			blocks[k], blocks[i] = blocks[i], blocks[k]
		}
	}
	permute(0)

	cmpBlocks := func(a, b [][]int) int {
		return slices.CompareFunc(a, b, func(x, y []int) int { return slices.Compare(x, y) })
	}
	slices.SortFunc(out, cmpBlocks)
	return slices.CompactFunc(out, func(a, b [][]int) bool { return cmpBlocks(a, b) == 0 })
}
