package clients

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"vadimgribanov.com/holomentor/internal/models"
)

type MemoryClient struct {
	jsonClient
}

func NewMemoryClient(baseURL string, timeout time.Duration) *MemoryClient {
	return &MemoryClient{jsonClient: newJSONClient(baseURL, timeout)}
}

func (c *MemoryClient) GetMemory(ctx context.Context, userID string) (models.Memory, error) {
	var memory models.Memory
	err := c.do(ctx, http.MethodGet, "/get_memory/"+url.PathEscape(userID), nil, &memory)
	if err != nil {
		return models.Memory{}, err
	}
	if memory.RecentInteractions == nil {
		memory.RecentInteractions = []models.Exchange{}
	}
	return memory, nil
}

func (c *MemoryClient) SaveInteraction(ctx context.Context, userID, question, answer string, timestamp time.Time) error {
	return c.do(ctx, http.MethodPost, "/save_interaction", models.SaveInteractionRequest{
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		Timestamp: timestamp.UTC().Format(time.RFC3339Nano),
	}, nil)
}
