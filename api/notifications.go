package api

import (
	"net/http"

	"log/slog"

	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

const notificationsLimit = 50

type NotificationsHandler struct {
	notifyRepo repository.NotificationRepo
}

func NewNotificationsHandler(nr repository.NotificationRepo) *NotificationsHandler {
	return &NotificationsHandler{notifyRepo: nr}
}

// List returns the caller's newest notifications. Once listed they are
// marked read, so the unread state survives exactly one fetch.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	su := SessionFromContext(ctx)

	notifications, err := h.notifyRepo.ListNotificationsByUser(ctx, su.ID, notificationsLimit)
	if err != nil {
		serverError(w, r, "list notifications", err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	if _, err := h.notifyRepo.MarkAllRead(ctx, su.ID); err != nil {
		logger.Error("mark notifications read failed",
			slog.Any("err", err),
			slog.Int64("user_id", su.ID),
			slog.String("request_id", requestID(ctx)),
		)
	}

	writeJSON(w, map[string]any{"notifications": notifications}, http.StatusOK)
}
