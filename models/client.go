package models

import "time"

// Client is created on first booking and never hard-deleted.
type Client struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Notes         string    `json:"notes"`
	RewardsEarned int       `json:"rewardsEarned"`
	State         Lifecycle `json:"state"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
