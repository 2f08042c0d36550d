package sqlite

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap/internal/models"
)

func (r *Repo) CreateMessage(ctx context.Context, m *models.Message) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("message is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO messages (sender_id, receiver_id, message_text, request_id, is_read, created) VALUES (?, ?, ?, ?, 0, ?)`,
		m.SenderID, m.ReceiverID, m.Text, m.RequestID, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) ListThread(ctx context.Context, userID, otherUserID int64) ([]models.Message, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, sender_id, receiver_id, message_text, request_id, is_read, created
		FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY created ASC, id ASC`, userID, otherUserID, otherUserID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.RequestID, &m.Read, &m.Created); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}

	return msgs, rows.Err()
}

func (r *Repo) MarkThreadRead(ctx context.Context, senderID, receiverID int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `UPDATE messages SET is_read = 1 WHERE sender_id = ? AND receiver_id = ? AND is_read = 0`, senderID, receiverID)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// ListConversations reduces the user's messages to the most recent one per
// counterparty plus an unread count, newest conversation first.
func (r *Repo) ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	rows, err := r.conn.Query(ctx, `WITH last_messages AS (
			SELECT
				CASE WHEN sender_id = ?1 THEN receiver_id ELSE sender_id END AS other_user_id,
				message_text,
				created,
				ROW_NUMBER() OVER (
					PARTITION BY CASE WHEN sender_id = ?1 THEN receiver_id ELSE sender_id END
					ORDER BY created DESC, id DESC
				) AS rn
			FROM messages
			WHERE sender_id = ?1 OR receiver_id = ?1
		),
		unread_counts AS (
			SELECT sender_id, COUNT(*) AS unread_count
			FROM messages
			WHERE receiver_id = ?1 AND is_read = 0
			GROUP BY sender_id
		)
		SELECT u.id, u.name, u.profile_image_url, lm.message_text, lm.created, COALESCE(uc.unread_count, 0)
		FROM last_messages lm
		JOIN users u ON lm.other_user_id = u.id
		LEFT JOIN unread_counts uc ON uc.sender_id = u.id
		WHERE lm.rn = 1
		ORDER BY lm.created DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.UserID, &c.UserName, &c.UserProfileImage, &c.LastMessage, &c.LastMessageTime, &c.UnreadCount); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}

	return convs, rows.Err()
}
