package geometry

import "fmt"

// Direction is a set of window edges grabbed by a resize.
type Direction uint8

const (
	North Direction = 1 << iota
	South
	East
	West
)

const (
	NorthEast = North | East
	NorthWest = North | West
	SouthEast = South | East
	SouthWest = South | West
)

// Directions lists the eight resize affordances of a window.
var Directions = []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

var directionNames = map[Direction]string{
	North:     "n",
	South:     "s",
	East:      "e",
	West:      "w",
	NorthEast: "ne",
	NorthWest: "nw",
	SouthEast: "se",
	SouthWest: "sw",
}

// Has reports whether d includes every edge in e.
func (d Direction) Has(e Direction) bool {
	return d&e == e && e != 0
}

// Valid reports whether d is one of the eight affordances.
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection parses a compass name such as "n" or "se".
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid resize direction %q", s)
}
