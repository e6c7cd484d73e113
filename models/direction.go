package models

import (
	"strings"

	"github.com/teranos/phi/errors"
)

// Direction selects which temporal relation a cut severs.
type Direction uint8

const (
	// Past cuts sever purview→mechanism influence (causes).
	Past Direction = iota
	// Future cuts sever mechanism→purview influence (effects).
	Future
	// Bidirectional applies both relations. Only the null cut uses it.
	Bidirectional
)

// Directions lists the directions a concept-style search runs over, in search order.
func Directions() []Direction {
	return []Direction{Past, Future}
}

func (d Direction) String() string {
	switch d {
	case Past:
		return "PAST"
	case Future:
		return "FUTURE"
	case Bidirectional:
		return "BIDIRECTIONAL"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether d is one of the defined directions.
func (d Direction) Valid() bool {
	return d <= Bidirectional
}

// Order returns the (source, sink) roles of a part's mechanism and purview
// for this direction. Past reads purview→mechanism; Future reads
// mechanism→purview.
func (d Direction) Order(mechanism, purview []int) (from, to []int) {
	if d == Past {
		return purview, mechanism
	}
	return mechanism, purview
}

// components expands Bidirectional into its two directed relations.
func (d Direction) components() []Direction {
	if d == Bidirectional {
		return []Direction{Past, Future}
	}
	return []Direction{d}
}

// ParseDirection accepts "past"/"future" (any case) and the short forms "p"/"f".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "past", "p", "cause":
		return Past, nil
	case "future", "f", "effect":
		return Future, nil
	default:
		return 0, errors.NewInvalidRequestError("unknown direction %q (want past or future)", s)
	}
}
