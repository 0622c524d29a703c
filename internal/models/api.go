package models

import "time"

// Wire payloads shared by the services and their HTTP clients.

type SaveInteractionRequest struct {
	UserID   string `json:"user_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	// Timestamp is kept as text: the store accepts several formats.
	Timestamp string `json:"timestamp,omitempty"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AnswerRequest struct {
	Question      string  `json:"question"`
	UserID        string  `json:"user_id"`
	MemoryContext *Memory `json:"memory_context,omitempty"`
}

type AnswerResponse struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

type ProcessRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

type ProcessResult struct {
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

type UsersResponse struct {
	Users []User `json:"users"`
}

type SearchResponse struct {
	Results []Interaction `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
