package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vadimgribanov.com/holomentor/internal/models"
	"vadimgribanov.com/holomentor/internal/utils"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrEmptyQuery       = errors.New("no search query provided")
)

type InteractionRepo interface {
	SaveInteraction(ctx context.Context, interaction models.Interaction) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetRecentInteractions(ctx context.Context, userID string, limit int) ([]models.Interaction, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SearchInteractions(ctx context.Context, query string, limit int) ([]models.Interaction, error)
}

// MemoryService is the interaction store. Read failures never reach the
// caller as errors: they come back as empty or error-annotated results.
type MemoryService struct {
	repo       InteractionRepo
	timeParser *utils.TimeParser
	userLocks  utils.KeyedLock
	now        func() time.Time
}

func NewMemoryService(repo InteractionRepo) *MemoryService {
	return &MemoryService{repo: repo, timeParser: utils.NewTimeParser(), now: time.Now}
}

// ParseTimestamp reads a client supplied timestamp. Blank input yields the
// zero time, which SaveInteraction replaces with now, so an explicit zero
// instant is rejected rather than silently rewritten.
func (s *MemoryService) ParseTimestamp(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	timestamp, err := s.timeParser.ParseTimestamp(raw, s.now())
	if err != nil || timestamp.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
	}
	return timestamp, nil
}

// SaveInteraction records one exchange. A zero timestamp means now.
func (s *MemoryService) SaveInteraction(ctx context.Context, userID, question, answer string, timestamp time.Time) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return ErrMissingFields
	}
	if timestamp.IsZero() {
		timestamp = s.now()
	}

	// Same-user saves run one at a time so total_interactions never loses an update.
	unlock, err := s.userLocks.Lock(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to acquire user lock: %w", err)
	}
	defer unlock()

	err = s.repo.SaveInteraction(ctx, models.Interaction{
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		Timestamp: timestamp,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Error saving interaction", "error", err, "user_id", userID)
		return err
	}

	slog.InfoContext(ctx, "Saved interaction", "user_id", userID)
	return nil
}

// GetMemory returns the user's counters and up to limit recent interactions.
func (s *MemoryService) GetMemory(ctx context.Context, userID string, limit int) models.Memory {
	limit = max(limit, 0)

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "Error getting user memory", "error", err, "user_id", userID)
		return failedMemory(userID, err)
	}

	interactions, err := s.repo.GetRecentInteractions(ctx, userID, limit)
	if err != nil {
		slog.ErrorContext(ctx, "Error getting recent interactions", "error", err, "user_id", userID)
		return failedMemory(userID, err)
	}

	slog.DebugContext(ctx, "Retrieved memory", "user_id", userID, "interactions", len(interactions))
	return models.NewMemory(userID, user, interactions)
}

func (s *MemoryService) ListUsers(ctx context.Context) []models.User {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Error getting all users", "error", err)
		return []models.User{}
	}
	return users
}

// Search matches query against questions and answers. Only an empty query is
// reported as an error.
func (s *MemoryService) Search(ctx context.Context, query string, limit int) ([]models.Interaction, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	limit = max(limit, 0)

	results, err := s.repo.SearchInteractions(ctx, query, limit)
	if err != nil {
		slog.ErrorContext(ctx, "Error searching interactions", "error", err, "query", query)
		return []models.Interaction{}, nil
	}
	return results, nil
}

func failedMemory(userID string, err error) models.Memory {
	memory := models.EmptyMemory(userID)
	memory.Error = err.Error()
	return memory
}
