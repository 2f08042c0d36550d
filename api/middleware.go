package api

import (
	"context"
	"net/http"

	"log/slog"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/skillswap/skillswap/internal/session"
)

type ctxKey string

const (
	ctxSessionUser ctxKey = "session_user"
	ctxRequestID   ctxKey = "request_id"
)

// SessionFromContext returns the authenticated identity, or nil on
// unprotected routes.
func SessionFromContext(ctx context.Context) *session.User {
	u, _ := ctx.Value(ctxSessionUser).(*session.User)
	return u
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

// LoggingMiddleware tags every request with a UUID, echoes it as
// X-Request-ID, and logs the call.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		r = r.WithContext(context.WithValue(r.Context(), ctxRequestID, id))

		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.String("request_id", id),
		)
		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err), slog.String("request_id", requestID(r.Context())))
				writeError(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// RequireSession resolves the session cookie into a typed principal and puts
// it into the request context. Any verification failure is a uniform 401.
func RequireSession(mgr *session.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := mgr.FromRequest(r)
			if user == nil {
				writeError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ctxSessionUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
