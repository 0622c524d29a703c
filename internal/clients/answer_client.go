package clients

import (
	"context"
	"net/http"
	"time"

	"vadimgribanov.com/holomentor/internal/models"
)

type AnswerClient struct {
	jsonClient
}

func NewAnswerClient(baseURL string, timeout time.Duration) *AnswerClient {
	return &AnswerClient{jsonClient: newJSONClient(baseURL, timeout)}
}

// Answer returns the generated answer text, empty if the agent sent none.
func (c *AnswerClient) Answer(ctx context.Context, question, userID string, memory models.Memory) (string, error) {
	var response models.AnswerResponse
	err := c.do(ctx, http.MethodPost, "/answer", models.AnswerRequest{
		Question:      question,
		UserID:        userID,
		MemoryContext: &memory,
	}, &response)
	if err != nil {
		return "", err
	}
	return response.Answer, nil
}
