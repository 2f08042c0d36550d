package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillswap/skillswap/internal/models"
)

const skillColumns = `id, user_id, skill_name, skill_category, skill_level, description, is_offering, created`

func scanSkill(row interface{ Scan(...any) error }) (*models.Skill, error) {
	var s models.Skill
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Category, &s.Level, &s.Description, &s.Offering, &s.Created)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}

func (r *Repo) CreateSkill(ctx context.Context, s *models.Skill) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("skill is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO skills (user_id, skill_name, skill_category, skill_level, description, is_offering, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, s.Name, s.Category, s.Level, s.Description, s.Offering, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) GetSkillByID(ctx context.Context, id int64) (*models.Skill, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = ?`, id)
	return scanSkill(row)
}

func (r *Repo) ListSkillsByUser(ctx context.Context, userID int64) ([]models.Skill, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+skillColumns+` FROM skills WHERE user_id = ? ORDER BY created DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []models.Skill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, *s)
	}

	return skills, rows.Err()
}

func (r *Repo) DeleteOwned(ctx context.Context, id, ownerID int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM skills WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
