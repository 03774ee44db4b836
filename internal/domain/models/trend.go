package models

import "strings"

// Direction is the sign of a change.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// DirectionOfSigned reads the direction of a signed display string such as
// "+1.2亿" or "-3.4%". Unsigned strings are flat.
func DirectionOfSigned(s string) Direction {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "+"):
		return DirectionUp
	case strings.HasPrefix(s, "-"), strings.HasPrefix(s, "−"):
		return DirectionDown
	default:
		return DirectionFlat
	}
}

// DirectionOfValue reads the direction of a number.
func DirectionOfValue(v float64) Direction {
	switch {
	case v > 0:
		return DirectionUp
	case v < 0:
		return DirectionDown
	default:
		return DirectionFlat
	}
}
