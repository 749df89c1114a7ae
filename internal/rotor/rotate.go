// Package rotor holds the selection state machine: rotating the current
// selection through the tunnel list, toggling a tunnel, and dispatching the
// command line argument.
package rotor

import "github.com/hegde-atri/wg-burrow/internal/types"

// Rotate returns the neighbour of current in list, wrapping around at both ends.
//
// When current is not in list (a stale selection) the search starts over from
// the front: forward yields the second element (the first for a one-element
// list) and backward yields the last element. list must not be empty.
func Rotate(current string, list []string, dir types.Direction) string {
	n := len(list)
	if n == 0 {
		return ""
	}

	i := indexOf(list, current)
	if i < 0 {
		i = 0
	}

	if dir == types.Backward {
		return list[(i-1+n)%n]
	}
	return list[(i+1)%n]
}

func indexOf(list []string, name string) int {
	for i, s := range list {
		if s == name {
			return i
		}
	}
	return -1
}
