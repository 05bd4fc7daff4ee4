// Package checklist holds the ingredient and step completion state and
// persists it to an expiring key-value cache.
package checklist

import "sort"

// Cache keys for the two independent checklists.
const (
	IngredientsKey = "banana_bread_ings_v3"
	StepsKey       = "banana_bread_steps_v3"
)

// State maps an item index in a fixed recipe list to its checked flag.
type State map[int]bool

// Toggle flips index i and returns its new value.
func (s State) Toggle(i int) bool {
	s[i] = !s[i]
	return s[i]
}

// Checked reports whether index i is checked. Missing indices are unchecked.
func (s State) Checked(i int) bool {
	return s[i]
}

// Clone returns an independent copy.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// CheckedIndices returns the checked indices in ascending order.
func (s State) CheckedIndices() []int {
	var out []int
	for k, v := range s {
		if v {
			out = append(out, k)
		}
	}
	sort.Ints(out)
	return out
}
