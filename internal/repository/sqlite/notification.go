package sqlite

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap/internal/models"
)

func (r *Repo) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	if n == nil {
		return 0, fmt.Errorf("notification is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO notifications (user_id, type, title, message, link, is_read, created) VALUES (?, ?, ?, ?, ?, 0, ?)`,
		n.UserID, n.Type, n.Title, n.Message, n.Link, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) ListNotificationsByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, user_id, type, title, message, link, is_read, created
		FROM notifications WHERE user_id = ? ORDER BY created DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Link, &n.Read, &n.Created); err != nil {
			return nil, err
		}
		notifs = append(notifs, n)
	}

	return notifs, rows.Err()
}

func (r *Repo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
