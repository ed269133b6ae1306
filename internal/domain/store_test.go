package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionStatus(t *testing.T) {
	assert.True(t, CanTransitionStatus(StoreStatusPending, StoreStatusApproved))
	assert.True(t, CanTransitionStatus(StoreStatusPending, StoreStatusRejected))

	// Approved and rejected are terminal.
	assert.False(t, CanTransitionStatus(StoreStatusApproved, StoreStatusRejected))
	assert.False(t, CanTransitionStatus(StoreStatusApproved, StoreStatusPending))
	assert.False(t, CanTransitionStatus(StoreStatusRejected, StoreStatusApproved))

	// Pending can only move to a decided status.
	assert.False(t, CanTransitionStatus(StoreStatusPending, StoreStatusPending))
	assert.False(t, CanTransitionStatus(StoreStatusPending, "suspended"))
}

func TestIsApproved(t *testing.T) {
	assert.True(t, (&Store{Status: StoreStatusApproved}).IsApproved())
	assert.False(t, (&Store{Status: StoreStatusPending}).IsApproved())
	assert.False(t, (&Store{Status: StoreStatusRejected}).IsApproved())
}
