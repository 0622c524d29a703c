package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vadimgribanov.com/holomentor/internal/database"
	"vadimgribanov.com/holomentor/internal/models"
)

type InteractionRepo struct {
	db *database.DB
}

func NewInteractionRepo(db *database.DB) *InteractionRepo {
	return &InteractionRepo{db: db}
}

// SaveInteraction upserts the user and appends the interaction in one transaction.
func (repo *InteractionRepo) SaveInteraction(ctx context.Context, interaction models.Interaction) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	timestamp := toMicros(interaction.Timestamp)

	upsertUser := `
		INSERT INTO users (user_id, first_seen, last_seen, total_interactions)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(user_id) DO UPDATE SET
			last_seen = excluded.last_seen,
			total_interactions = users.total_interactions + 1
	`
	if _, err := tx.ExecContext(ctx, upsertUser, interaction.UserID, timestamp, timestamp); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	insertInteraction := `
		INSERT INTO interactions (user_id, question, answer, timestamp)
		VALUES (?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, insertInteraction, interaction.UserID, interaction.Question, interaction.Answer, timestamp); err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit interaction: %w", err)
	}
	return nil
}

// GetUser returns nil, nil when the user never interacted.
func (repo *InteractionRepo) GetUser(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT user_id, first_seen, last_seen, total_interactions
		FROM users
		WHERE user_id = ?
	`

	user, err := scanUser(repo.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (repo *InteractionRepo) GetRecentInteractions(ctx context.Context, userID string, limit int) ([]models.Interaction, error) {
	query := `
		SELECT id, user_id, question, answer, timestamp
		FROM interactions
		WHERE user_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := repo.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	return scanInteractions(rows)
}

func (repo *InteractionRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT user_id, first_seen, last_seen, total_interactions
		FROM users
		ORDER BY last_seen DESC, id DESC
	`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// SearchInteractions matches query as a literal substring of question or answer.
// LIKE is case-insensitive for ASCII letters.
func (repo *InteractionRepo) SearchInteractions(ctx context.Context, query string, limit int) ([]models.Interaction, error) {
	statement := `
		SELECT id, user_id, question, answer, timestamp
		FROM interactions
		WHERE question LIKE ? ESCAPE '\' OR answer LIKE ? ESCAPE '\'
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	pattern := "%" + escapeLike(query) + "%"
	rows, err := repo.db.QueryContext(ctx, statement, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search interactions: %w", err)
	}
	defer rows.Close()

	return scanInteractions(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var firstSeen, lastSeen int64
	err := row.Scan(&user.UserID, &firstSeen, &lastSeen, &user.TotalInteractions)
	if err != nil {
		return models.User{}, err
	}
	user.FirstSeen = fromMicros(firstSeen)
	user.LastSeen = fromMicros(lastSeen)
	return user, nil
}

func scanInteractions(rows *sql.Rows) ([]models.Interaction, error) {
	interactions := make([]models.Interaction, 0)
	for rows.Next() {
		var interaction models.Interaction
		var timestamp int64
		err := rows.Scan(
			&interaction.ID,
			&interaction.UserID,
			&interaction.Question,
			&interaction.Answer,
			&timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		interaction.Timestamp = fromMicros(timestamp)
		interactions = append(interactions, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interactions: %w", err)
	}
	return interactions, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func toMicros(t time.Time) int64 {
	return t.UTC().UnixMicro()
}

func fromMicros(micros int64) time.Time {
	return time.UnixMicro(micros).UTC()
}
