// Package lifecycle holds the order status transition table. It is pure:
// it owns no data and performs no persistence, only the legality check.
package lifecycle

import (
	"grillhouse/internal/domain"
	"grillhouse/internal/errors"
)

// transitions enumerates every legal edge. Orders move through each
// intermediate state on the happy path; cancellation may short-circuit
// from any non-terminal state. Terminal states have no outgoing edges.
var transitions = map[string][]string{
	domain.OrderStatusPending:   {domain.OrderStatusPreparing, domain.OrderStatusCancelled},
	domain.OrderStatusPreparing: {domain.OrderStatusReady, domain.OrderStatusCancelled},
	domain.OrderStatusReady:     {domain.OrderStatusCompleted, domain.OrderStatusCancelled},
	domain.OrderStatusCompleted: {},
	domain.OrderStatusCancelled: {},
}

// Known reports whether status is a recognized order status.
func Known(status string) bool {
	_, ok := transitions[status]
	return ok
}

// Transition validates moving an order from current to requested. Any pair
// outside the table, including unrecognized statuses and no-op self
// transitions, yields a TransitionError carrying the pair.
func Transition(current, requested string) error {
	for _, next := range transitions[current] {
		if next == requested {
			return nil
		}
	}
	return errors.NewTransitionError(current, requested)
}
