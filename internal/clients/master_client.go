package clients

import (
	"context"
	"net/http"
	"time"

	"vadimgribanov.com/holomentor/internal/models"
)

// MasterClient is used by frontends that talk to the coordinator.
type MasterClient struct {
	jsonClient
}

func NewMasterClient(baseURL string, timeout time.Duration) *MasterClient {
	return &MasterClient{jsonClient: newJSONClient(baseURL, timeout)}
}

func (c *MasterClient) Process(ctx context.Context, message, userID string) (models.ProcessResult, error) {
	var result models.ProcessResult
	err := c.do(ctx, http.MethodPost, "/process", models.ProcessRequest{
		Message: message,
		UserID:  userID,
	}, &result)
	return result, err
}
