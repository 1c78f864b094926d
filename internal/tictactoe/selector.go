package tictactoe

import "math/rand"

// Selector picks the computer's cell out of the free ones (never empty).
type Selector func(available []int) int

// RandomSelector - uniform choice over the free cells.
func RandomSelector(available []int) int {
	return available[rand.Intn(len(available))] //nolint: gosec // it's ok
}

// FirstSelector - always takes the lowest free cell.
func FirstSelector(available []int) int {
	return available[0]
}
