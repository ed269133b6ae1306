package domain

import (
	"time"
)

// Store approval statuses.
const (
	StoreStatusPending  = "pending"
	StoreStatusApproved = "approved"
	StoreStatusRejected = "rejected"
)

// StoreStatusNotRegistered is the sentinel status reported for a user who has
// not applied for a store. It is never persisted.
const StoreStatusNotRegistered = "not registered"

// Store represents a seller's business entity. Each user owns at most one
// store; the username is a unique, case-insensitive handle stored lowercased.
type Store struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Email       string    `json:"email"`
	Contact     string    `json:"contact"`
	Address     string    `json:"address"`
	Logo        string    `json:"logo"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsApproved reports whether the store may act as a seller.
func (s *Store) IsApproved() bool {
	return s.Status == StoreStatusApproved
}

// CanTransitionStatus reports whether a store may move from one approval
// status to another. Only pending stores can be decided; approved and
// rejected are terminal.
func CanTransitionStatus(from, to string) bool {
	if from != StoreStatusPending {
		return false
	}
	return to == StoreStatusApproved || to == StoreStatusRejected
}
