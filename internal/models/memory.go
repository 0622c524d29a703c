package models

import "time"

// Memory is what the store knows about a user. FirstSeen and LastSeen stay nil
// for users that never interacted; Error is set when the read failed.
type Memory struct {
	UserID             string     `json:"user_id"`
	FirstSeen          *time.Time `json:"first_seen"`
	LastSeen           *time.Time `json:"last_seen"`
	TotalInteractions  int64      `json:"total_interactions"`
	RecentInteractions []Exchange `json:"recent_interactions"`
	Error              string     `json:"error,omitempty"`
}

func EmptyMemory(userID string) Memory {
	return Memory{
		UserID:             userID,
		RecentInteractions: []Exchange{},
	}
}

func NewMemory(userID string, user *User, interactions []Interaction) Memory {
	memory := EmptyMemory(userID)
	if user != nil {
		firstSeen, lastSeen := user.FirstSeen, user.LastSeen
		memory.FirstSeen = &firstSeen
		memory.LastSeen = &lastSeen
		memory.TotalInteractions = user.TotalInteractions
	}
	for _, interaction := range interactions {
		memory.RecentInteractions = append(memory.RecentInteractions, interaction.Exchange())
	}
	return memory
}
