package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContractStatus is the lifecycle state of a contract.
// open is the only non-terminal state: once a contract leaves open it
// never returns.
type ContractStatus string

const (
	ContractOpen      ContractStatus = "open"
	ContractFulfilled ContractStatus = "fulfilled"
	ContractExpired   ContractStatus = "expired"
)

// Contract is a time-bounded bounty posted by one character against a
// target. The reward is escrowed from the poster when the contract is
// created and paid to the fulfiller or refunded on expiry.
type Contract struct {
	ID          uuid.UUID      `json:"id"`
	PosterID    int64          `json:"poster_id"`
	TargetID    int64          `json:"target_id"`
	Status      ContractStatus `json:"status"`
	Reward      int64          `json:"reward"`
	FulfilledBy *int64         `json:"fulfilled_by,omitempty"`
	ExpiresAt   time.Time      `json:"expires_at"`
	CreatedAt   time.Time      `json:"created_at"`
}

// IsOpen reports whether the contract can still be fulfilled or expired
func (c *Contract) IsOpen() bool {
	return c.Status == ContractOpen
}
