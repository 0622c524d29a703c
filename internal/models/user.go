package models

import "time"

// User is created implicitly by the first saved interaction.
type User struct {
	UserID            string    `json:"user_id"`
	FirstSeen         time.Time `json:"first_seen"`
	LastSeen          time.Time `json:"last_seen"`
	TotalInteractions int64     `json:"total_interactions"`
}
