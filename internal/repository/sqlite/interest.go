package sqlite

import (
	"context"
	"database/sql"

	"github.com/skillswap/skillswap/internal/models"
)

func (r *Repo) GetInterestByName(ctx context.Context, name string) (*models.Interest, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, category FROM interests WHERE name = ?`, name)
	var i models.Interest
	if err := row.Scan(&i.ID, &i.Name, &i.Category); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &i, nil
}

func (r *Repo) ListInterestsByUser(ctx context.Context, userID int64) ([]models.Interest, error) {
	rows, err := r.conn.Query(ctx, `SELECT i.id, i.name, i.category FROM interests i JOIN user_interests ui ON ui.interest_id = i.id WHERE ui.user_id = ? ORDER BY i.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interests []models.Interest
	for rows.Next() {
		var i models.Interest
		if err := rows.Scan(&i.ID, &i.Name, &i.Category); err != nil {
			return nil, err
		}
		interests = append(interests, i)
	}

	return interests, rows.Err()
}

func (r *Repo) ReplaceUserInterests(ctx context.Context, userID int64, names []string) error {
	if _, err := r.conn.Exec(ctx, `DELETE FROM user_interests WHERE user_id = ?`, userID); err != nil {
		return err
	}

	for _, name := range names {
		i, err := r.GetInterestByName(ctx, name)
		if err != nil {
			return err
		}
		if i == nil {
			// Names with no catalog entry are skipped.
			continue
		}
		if _, err := r.conn.Exec(ctx, `INSERT OR IGNORE INTO user_interests (user_id, interest_id) VALUES (?, ?)`, userID, i.ID); err != nil {
			return err
		}
	}

	return nil
}
