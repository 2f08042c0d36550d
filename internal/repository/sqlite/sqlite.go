package sqlite

import (
	"errors"
	"log/slog"
	"time"

	"github.com/skillswap/skillswap/internal/db"
	"github.com/skillswap/skillswap/pkg/repository"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Repo implements the repository interfaces using the internal DB wrapper.
type Repo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure Repo implements the public interfaces.
var _ repository.UserRepo = (*Repo)(nil)
var _ repository.SkillRepo = (*Repo)(nil)
var _ repository.InterestRepo = (*Repo)(nil)
var _ repository.FavoriteRepo = (*Repo)(nil)
var _ repository.MessageRepo = (*Repo)(nil)
var _ repository.NotificationRepo = (*Repo)(nil)
var _ repository.SkillRequestRepo = (*Repo)(nil)
var _ repository.ReviewRepo = (*Repo)(nil)

func New(conn *db.DB, logger *slog.Logger) *Repo {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

// isUniqueViolation reports whether err is the driver's UNIQUE constraint
// failure, so writes racing past an existence check still surface as
// repository.ErrDuplicate rather than a bare driver error.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
