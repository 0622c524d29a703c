package models

import "time"

// Interaction is one immutable question/answer exchange.
type Interaction struct {
	ID        int64     `json:"-"`
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

func (i Interaction) Exchange() Exchange {
	return Exchange{
		Question:  i.Question,
		Answer:    i.Answer,
		Timestamp: i.Timestamp,
	}
}

// Exchange is an interaction as it appears inside a user's memory.
type Exchange struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}
