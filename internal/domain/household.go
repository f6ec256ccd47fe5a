package domain

import "time"

// Household is a shared ledger spanning several users.
type Household struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// HouseholdMember links a user to a household.
type HouseholdMember struct {
	HouseholdID string
	UserID      string
	Role        string
	JoinedAt    time.Time
}
