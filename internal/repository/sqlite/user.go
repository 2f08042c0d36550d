package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

const userColumns = `id, email, password_hash, name, bio, occupation, gender, birth_date, location, latitude, longitude, radius_km, profile_image_url, created, updated, last_login`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Bio, &u.Occupation, &u.Gender, &u.BirthDate, &u.Location, &u.Latitude, &u.Longitude, &u.RadiusKm, &u.ProfileImageURL, &u.Created, &u.Updated, &u.LastLogin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}

func (r *Repo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO users (email, password_hash, name, occupation, gender, birth_date, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.PasswordHash, u.Name, u.Occupation, u.Gender, u.BirthDate, ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}

		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *Repo) UpdateProfile(ctx context.Context, id int64, p *repository.ProfileUpdate) error {
	if p == nil {
		return fmt.Errorf("profile update is nil")
	}

	// COALESCE keeps the stored value for fields the caller omitted.
	_, err := r.conn.Exec(ctx, `UPDATE users SET
		occupation = COALESCE(?, occupation),
		gender = COALESCE(?, gender),
		birth_date = COALESCE(?, birth_date),
		bio = COALESCE(?, bio),
		location = COALESCE(?, location),
		latitude = COALESCE(?, latitude),
		longitude = COALESCE(?, longitude),
		radius_km = COALESCE(?, radius_km),
		profile_image_url = COALESCE(?, profile_image_url),
		updated = ?
		WHERE id = ?`,
		p.Occupation, p.Gender, p.BirthDate, p.Bio, p.Location, p.Latitude, p.Longitude, p.RadiusKm, p.ProfileImageURL, now(), id)
	return err
}

func (r *Repo) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, now(), id)
	return err
}

func (r *Repo) ListExplore(ctx context.Context, excludeID int64, limit int) ([]models.UserCard, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, name, occupation, bio, location, profile_image_url FROM users WHERE id != ? ORDER BY RANDOM() LIMIT ?`, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.UserCard
	ids := make([]int64, 0)
	for rows.Next() {
		var c models.UserCard
		if err := rows.Scan(&c.ID, &c.Name, &c.Occupation, &c.Bio, &c.Location, &c.ProfileImageURL); err != nil {
			return nil, err
		}
		cards = append(cards, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return cards, nil
	}

	skillsByUser, err := r.skillsForUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		cards[i].Skills = skillsByUser[cards[i].ID]
	}

	return cards, nil
}

func (r *Repo) ListWithCoordinates(ctx context.Context, excludeID int64) ([]models.User, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id != ? AND latitude IS NOT NULL AND longitude IS NOT NULL`, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

// skillsForUsers loads the skills of every listed user in one query.
func (r *Repo) skillsForUsers(ctx context.Context, ids []int64) (map[int64][]models.Skill, error) {
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.conn.Query(ctx, `SELECT `+skillColumns+` FROM skills WHERE user_id IN (`+placeholders+`) ORDER BY created DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byUser := make(map[int64][]models.Skill)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		byUser[s.UserID] = append(byUser[s.UserID], *s)
	}

	return byUser, rows.Err()
}
