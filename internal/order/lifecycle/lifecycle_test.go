package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grillhouse/internal/domain"
	apperrors "grillhouse/internal/errors"
)

var allStatuses = []string{
	domain.OrderStatusPending,
	domain.OrderStatusPreparing,
	domain.OrderStatusReady,
	domain.OrderStatusCompleted,
	domain.OrderStatusCancelled,
}

func TestTransition_LegalEdges(t *testing.T) {
	legal := [][2]string{
		{domain.OrderStatusPending, domain.OrderStatusPreparing},
		{domain.OrderStatusPreparing, domain.OrderStatusReady},
		{domain.OrderStatusReady, domain.OrderStatusCompleted},
		{domain.OrderStatusPending, domain.OrderStatusCancelled},
		{domain.OrderStatusPreparing, domain.OrderStatusCancelled},
		{domain.OrderStatusReady, domain.OrderStatusCancelled},
	}

	for _, edge := range legal {
		assert.NoError(t, Transition(edge[0], edge[1]), "%s -> %s should be legal", edge[0], edge[1])
	}
}

func TestTransition_EverythingElseIsIllegal(t *testing.T) {
	legal := map[[2]string]bool{
		{domain.OrderStatusPending, domain.OrderStatusPreparing}:   true,
		{domain.OrderStatusPreparing, domain.OrderStatusReady}:     true,
		{domain.OrderStatusReady, domain.OrderStatusCompleted}:     true,
		{domain.OrderStatusPending, domain.OrderStatusCancelled}:   true,
		{domain.OrderStatusPreparing, domain.OrderStatusCancelled}: true,
		{domain.OrderStatusReady, domain.OrderStatusCancelled}:     true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			if legal[[2]string{from, to}] {
				continue
			}

			err := Transition(from, to)
			te, ok := apperrors.IsTransitionError(err)
			assert.True(t, ok, "%s -> %s should be illegal", from, to)
			assert.Equal(t, from, te.Current)
			assert.Equal(t, to, te.Requested)
		}
	}
}

func TestTransition_TerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []string{domain.OrderStatusCompleted, domain.OrderStatusCancelled} {
		for _, to := range allStatuses {
			_, ok := apperrors.IsTransitionError(Transition(terminal, to))
			assert.True(t, ok, "%s -> %s must be rejected", terminal, to)
		}
	}
}

func TestTransition_SkippingIntermediateStateIsIllegal(t *testing.T) {
	_, ok := apperrors.IsTransitionError(Transition(domain.OrderStatusPending, domain.OrderStatusReady))
	assert.True(t, ok)
}

func TestTransition_SelfTransitionIsIllegal(t *testing.T) {
	_, ok := apperrors.IsTransitionError(Transition(domain.OrderStatusPending, domain.OrderStatusPending))
	assert.True(t, ok)
}

func TestTransition_UnknownStatus(t *testing.T) {
	err := Transition("shipped", domain.OrderStatusPending)
	te, ok := apperrors.IsTransitionError(err)
	assert.True(t, ok)
	assert.Equal(t, "shipped", te.Current)

	_, ok = apperrors.IsTransitionError(Transition(domain.OrderStatusPending, "shipped"))
	assert.True(t, ok)
}

func TestKnown(t *testing.T) {
	for _, status := range allStatuses {
		assert.True(t, Known(status))
	}
	assert.False(t, Known("shipped"))
	assert.False(t, Known(""))
}
