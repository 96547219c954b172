package solver

import "strings"

// Event describes how a variable's domain changed. A single change may carry
// several bits: fixing a variable by raising its minimum is both EventBound
// and EventInstantiate.
type Event uint8

const (
	// EventRemove is raised when an interior value is removed and neither
	// bound moves.
	EventRemove Event = 1 << iota

	// EventBound is raised when the minimum or maximum changes.
	EventBound

	// EventInstantiate is raised when the domain shrinks to a single value.
	EventInstantiate
)

// EventMask selects the events a propagator wants to be woken for.
type EventMask uint8

// EventAny wakes a propagator for every domain change.
const EventAny = EventMask(EventRemove | EventBound | EventInstantiate)

// Mask builds an EventMask from events.
func Mask(events ...Event) EventMask {
	var m EventMask
	for _, e := range events {
		m |= EventMask(e)
	}
	return m
}

// Has reports whether any bit of e is selected by the mask.
func (m EventMask) Has(e Event) bool { return m&EventMask(e) != 0 }

func (e Event) String() string {
	if e == 0 {
		return "none"
	}
	var parts []string
	if e&EventRemove != 0 {
		parts = append(parts, "remove")
	}
	if e&EventBound != 0 {
		parts = append(parts, "bound")
	}
	if e&EventInstantiate != 0 {
		parts = append(parts, "instantiate")
	}
	return strings.Join(parts, "|")
}
