package api

import (
	"net/http"

	"log/slog"

	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

// notify inserts an in-app notification after a primary write has succeeded.
// Delivery is best-effort: a failed insert is logged against the request ID
// and never fails or rolls back the primary write.
func notify(r *http.Request, repo repository.NotificationRepo, userID int64, typ, title, message string, link string) {
	n := &models.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
	}
	if link != "" {
		n.Link = &link
	}

	if _, err := repo.CreateNotification(r.Context(), n); err != nil {
		logger.Error("notification insert failed",
			slog.Any("err", err),
			slog.String("type", typ),
			slog.Int64("user_id", userID),
			slog.String("request_id", requestID(r.Context())),
		)
	}
}
