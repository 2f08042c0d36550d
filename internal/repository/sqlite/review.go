package sqlite

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

func (r *Repo) CreateReview(ctx context.Context, rev *models.Review) (int64, error) {
	if rev == nil {
		return 0, fmt.Errorf("review is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO reviews (reviewer_id, reviewee_id, request_id, rating, review_text, created) VALUES (?, ?, ?, ?, ?, ?)`,
		rev.ReviewerID, rev.RevieweeID, rev.RequestID, rev.Rating, rev.Text, now())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}

		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) HasReviewed(ctx context.Context, reviewerID, revieweeID int64) (bool, error) {
	var count int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM reviews WHERE reviewer_id = ? AND reviewee_id = ?`, reviewerID, revieweeID)
	if err := row.Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *Repo) ListForUser(ctx context.Context, revieweeID int64) ([]models.ReviewEntry, error) {
	rows, err := r.conn.Query(ctx, `SELECT r.id, r.rating, r.review_text, r.created, u.id, u.name, u.profile_image_url
		FROM reviews r JOIN users u ON r.reviewer_id = u.id
		WHERE r.reviewee_id = ?
		ORDER BY r.created DESC, r.id DESC`, revieweeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReviewEntry
	for rows.Next() {
		var e models.ReviewEntry
		if err := rows.Scan(&e.ID, &e.Rating, &e.Text, &e.Created, &e.Reviewer.ID, &e.Reviewer.Name, &e.Reviewer.ProfileImageURL); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *Repo) RatingSummary(ctx context.Context, revieweeID int64) (float64, int64, error) {
	var avg float64
	var count int64
	row := r.conn.QueryRow(ctx, `SELECT COALESCE(ROUND(AVG(rating), 1), 0), COUNT(*) FROM reviews WHERE reviewee_id = ?`, revieweeID)
	if err := row.Scan(&avg, &count); err != nil {
		return 0, 0, err
	}

	return avg, count, nil
}
