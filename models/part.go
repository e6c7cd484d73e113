package models

import (
	"slices"
	"strconv"
	"strings"
)

// Part associates a subset of mechanism indices with a subset of purview
// indices. Parts are immutable; accessors return copies.
type Part struct {
	mechanism []int
	purview   []int
}

// NewPart copies mechanism and purview into a new Part. Order is preserved.
func NewPart(mechanism, purview []int) Part {
	return Part{
		mechanism: cloneInts(mechanism),
		purview:   cloneInts(purview),
	}
}

// Mechanism returns a copy of the part's mechanism indices.
func (p Part) Mechanism() []int { return cloneInts(p.mechanism) }

// Purview returns a copy of the part's purview indices.
func (p Part) Purview() []int { return cloneInts(p.purview) }

// IsEmpty reports whether both the mechanism and the purview are empty.
func (p Part) IsEmpty() bool {
	return len(p.mechanism) == 0 && len(p.purview) == 0
}

// Equal reports elementwise equality of mechanism and purview.
func (p Part) Equal(o Part) bool {
	return slices.Equal(p.mechanism, o.mechanism) && slices.Equal(p.purview, o.purview)
}

// Compare orders parts lexicographically by mechanism, then purview.
// A shorter sequence that is a prefix of a longer one sorts first.
func (p Part) Compare(o Part) int {
	if c := slices.Compare(p.mechanism, o.mechanism); c != 0 {
		return c
	}
	return slices.Compare(p.purview, o.purview)
}

// Digest returns the content digest of the part.
func (p Part) Digest() [32]byte {
	return NewDigester("part").WriteInts(p.mechanism).WriteInts(p.purview).Sum()
}

// String renders the part as "mechanism/purview", e.g. "(0,2)/(0)".
func (p Part) String() string {
	return formatIndices(p.mechanism) + "/" + formatIndices(p.purview)
}

func formatIndices(xs []int) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, x := range xs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
	b.WriteByte(')')
	return b.String()
}

func cloneInts(xs []int) []int {
	if len(xs) == 0 {
		return nil
	}
	return append([]int(nil), xs...)
}
