package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/pkg/repository"
)

type MessagesHandler struct {
	messageRepo repository.MessageRepo
	userRepo    repository.UserRepo
	notifyRepo  repository.NotificationRepo
}

func NewMessagesHandler(mr repository.MessageRepo, ur repository.UserRepo, nr repository.NotificationRepo) *MessagesHandler {
	return &MessagesHandler{messageRepo: mr, userRepo: ur, notifyRepo: nr}
}

// Conversations lists the caller's message threads, one entry per partner,
// newest first, each with its unread count.
func (h *MessagesHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	su := SessionFromContext(r.Context())

	conversations, err := h.messageRepo.ListConversations(r.Context(), su.ID)
	if err != nil {
		serverError(w, r, "list conversations", err)
		return
	}
	if conversations == nil {
		conversations = []models.Conversation{}
	}

	writeJSON(w, map[string]any{"conversations": conversations}, http.StatusOK)
}

// Thread returns the full exchange with one partner in chronological order.
// Fetching a thread marks the partner's messages to the caller as read; the
// response still carries the read flags as they were before this fetch.
func (h *MessagesHandler) Thread(w http.ResponseWriter, r *http.Request) {
	partnerID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || partnerID <= 0 {
		writeError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	su := SessionFromContext(ctx)

	messages, err := h.messageRepo.ListThread(ctx, su.ID, partnerID)
	if err != nil {
		serverError(w, r, "list thread", err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	if _, err := h.messageRepo.MarkThreadRead(ctx, partnerID, su.ID); err != nil {
		logger.Error("mark thread read failed",
			slog.Any("err", err),
			slog.Int64("user_id", su.ID),
			slog.Int64("partner_id", partnerID),
			slog.String("request_id", requestID(ctx)),
		)
	}

	writeJSON(w, map[string]any{"messages": messages}, http.StatusOK)
}

type sendMessageRequest struct {
	ReceiverID int64  `json:"receiverId"`
	Text       string `json:"messageText"`
	RequestID  *int64 `json:"requestId"`
}

func (h *MessagesHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if msg, err := decodeValid(r.Context(), r, messageSchema, &req); err != nil {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	su := SessionFromContext(ctx)

	if req.ReceiverID == su.ID {
		writeError(w, "You cannot message yourself", http.StatusBadRequest)
		return
	}

	receiver, err := h.userRepo.GetByID(ctx, req.ReceiverID)
	if err != nil {
		serverError(w, r, "load receiver", err)
		return
	}
	if receiver == nil {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}

	message := models.Message{
		SenderID:   su.ID,
		ReceiverID: req.ReceiverID,
		Text:       req.Text,
		RequestID:  req.RequestID,
	}
	id, err := h.messageRepo.CreateMessage(ctx, &message)
	if err != nil {
		serverError(w, r, "create message", err)
		return
	}
	message.ID = id

	notify(r, h.notifyRepo, req.ReceiverID, models.NotifyMessage,
		"New message",
		fmt.Sprintf("%s sent you a message", su.Name),
		fmt.Sprintf("/messages/%d", su.ID))

	writeJSON(w, map[string]any{"message": message}, http.StatusCreated)
}
