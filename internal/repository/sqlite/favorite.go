package sqlite

import (
	"context"

	"github.com/skillswap/skillswap/internal/models"
)

func (r *Repo) AddFavorite(ctx context.Context, userID, favoritedUserID int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `INSERT OR IGNORE INTO favorites (user_id, favorited_user_id, created) VALUES (?, ?, ?)`, userID, favoritedUserID, now())
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *Repo) RemoveFavorite(ctx context.Context, userID, favoritedUserID int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM favorites WHERE user_id = ? AND favorited_user_id = ?`, userID, favoritedUserID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *Repo) IsFavorite(ctx context.Context, userID, favoritedUserID int64) (bool, error) {
	var count int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM favorites WHERE user_id = ? AND favorited_user_id = ?`, userID, favoritedUserID)
	if err := row.Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *Repo) ListFavorites(ctx context.Context, userID int64) ([]models.UserCard, error) {
	rows, err := r.conn.Query(ctx, `SELECT u.id, u.name, u.occupation, u.bio, u.location, u.profile_image_url
		FROM favorites f JOIN users u ON f.favorited_user_id = u.id
		WHERE f.user_id = ?
		ORDER BY f.created DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.UserCard
	for rows.Next() {
		var c models.UserCard
		if err := rows.Scan(&c.ID, &c.Name, &c.Occupation, &c.Bio, &c.Location, &c.ProfileImageURL); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}
