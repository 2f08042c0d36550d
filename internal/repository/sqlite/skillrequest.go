package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillswap/skillswap/internal/models"
)

func (r *Repo) CreateRequest(ctx context.Context, req *models.SkillRequest) (int64, error) {
	if req == nil {
		return 0, fmt.Errorf("skill request is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO skill_requests (requester_id, provider_id, skill_id, message, status, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.RequesterID, req.ProviderID, req.SkillID, req.Message, models.StatusPending, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) GetRequestByID(ctx context.Context, id int64) (*models.SkillRequest, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, requester_id, provider_id, skill_id, message, status, created, updated FROM skill_requests WHERE id = ?`, id)
	var req models.SkillRequest
	err := row.Scan(&req.ID, &req.RequesterID, &req.ProviderID, &req.SkillID, &req.Message, &req.Status, &req.Created, &req.Updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &req, nil
}

// UpdateStatus is conditional on the current status so that two concurrent
// transitions cannot both win; the loser sees zero rows affected.
func (r *Repo) UpdateStatus(ctx context.Context, id, providerID int64, fromStatus, toStatus string) (bool, error) {
	res, err := r.conn.Exec(ctx, `UPDATE skill_requests SET status = ?, updated = ? WHERE id = ? AND provider_id = ? AND status = ?`,
		toStatus, now(), id, providerID, fromStatus)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

const requestEntryColumns = `sr.id, sr.status, sr.message, sr.created, s.skill_name, s.skill_category`

func (r *Repo) ListByRequester(ctx context.Context, requesterID int64) ([]models.RequestEntry, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+requestEntryColumns+`, u.id, u.name, u.profile_image_url
		FROM skill_requests sr
		JOIN users u ON sr.provider_id = u.id
		JOIN skills s ON sr.skill_id = s.id
		WHERE sr.requester_id = ?
		ORDER BY sr.created DESC, sr.id DESC`, requesterID)
	if err != nil {
		return nil, err
	}

	return collectRequestEntries(rows, false)
}

func (r *Repo) ListByProvider(ctx context.Context, providerID int64) ([]models.RequestEntry, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+requestEntryColumns+`, u.id, u.name, u.profile_image_url
		FROM skill_requests sr
		JOIN users u ON sr.requester_id = u.id
		JOIN skills s ON sr.skill_id = s.id
		WHERE sr.provider_id = ?
		ORDER BY sr.created DESC, sr.id DESC`, providerID)
	if err != nil {
		return nil, err
	}

	return collectRequestEntries(rows, true)
}

func (r *Repo) ListOpen(ctx context.Context, excludeRequesterID int64, limit int) ([]models.RequestEntry, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+requestEntryColumns+`, u.id, u.name, u.profile_image_url
		FROM skill_requests sr
		JOIN users u ON sr.requester_id = u.id
		JOIN skills s ON sr.skill_id = s.id
		WHERE sr.status = ? AND sr.requester_id != ?
		ORDER BY sr.created DESC, sr.id DESC
		LIMIT ?`, models.StatusPending, excludeRequesterID, limit)
	if err != nil {
		return nil, err
	}

	return collectRequestEntries(rows, true)
}

func (r *Repo) ListActive(ctx context.Context, userID int64) ([]models.RequestEntry, error) {
	return r.listInvolving(ctx, userID, []string{models.StatusPending, models.StatusAccepted}, 0)
}

func (r *Repo) ListPast(ctx context.Context, userID int64, limit int) ([]models.RequestEntry, error) {
	return r.listInvolving(ctx, userID, []string{models.StatusCompleted, models.StatusRejected, models.StatusCancelled}, limit)
}

// listInvolving returns requests where the user is requester or provider,
// with both counterparties joined.
func (r *Repo) listInvolving(ctx context.Context, userID int64, statuses []string, limit int) ([]models.RequestEntry, error) {
	q := `SELECT ` + requestEntryColumns + `,
			rq.id, rq.name, rq.profile_image_url,
			pv.id, pv.name, pv.profile_image_url
		FROM skill_requests sr
		JOIN users rq ON sr.requester_id = rq.id
		JOIN users pv ON sr.provider_id = pv.id
		JOIN skills s ON sr.skill_id = s.id
		WHERE (sr.requester_id = ? OR sr.provider_id = ?) AND sr.status IN (`
	args := []any{userID, userID}
	for i, st := range statuses {
		if i > 0 {
			q += ","
		}
		q += "?"
		args = append(args, st)
	}
	q += `) ORDER BY sr.created DESC, sr.id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.conn.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.RequestEntry
	for rows.Next() {
		var e models.RequestEntry
		var rq, pv models.UserRef
		if err := rows.Scan(&e.ID, &e.Status, &e.Message, &e.Created, &e.Skill.Name, &e.Skill.Category,
			&rq.ID, &rq.Name, &rq.ProfileImageURL, &pv.ID, &pv.Name, &pv.ProfileImageURL); err != nil {
			return nil, err
		}
		e.Requester = &rq
		e.Provider = &pv
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// collectRequestEntries scans rows whose joined user is the requester
// (asRequester) or the provider.
func collectRequestEntries(rows *sql.Rows, asRequester bool) ([]models.RequestEntry, error) {
	defer rows.Close()

	var entries []models.RequestEntry
	for rows.Next() {
		var e models.RequestEntry
		var ref models.UserRef
		if err := rows.Scan(&e.ID, &e.Status, &e.Message, &e.Created, &e.Skill.Name, &e.Skill.Category,
			&ref.ID, &ref.Name, &ref.ProfileImageURL); err != nil {
			return nil, err
		}
		if asRequester {
			e.Requester = &ref
		} else {
			e.Provider = &ref
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
