package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"family-connect-go/internal/domain/apperr"
	userdomain "family-connect-go/internal/domain/user"
	"family-connect-go/pkg/logger"
)

const AdminHeader = "X-User-ID"

type contextKey int

const userKey contextKey = iota

type ProfileReader interface {
	GetProfile(ctx context.Context, userID string) (*userdomain.PublicUser, error)
}

// AdminAuth admits requests whose X-User-ID names an admin-role account.
type AdminAuth struct {
	profiles ProfileReader
	log      logger.Logger
}

func NewAdminAuth(profiles ProfileReader, log logger.Logger) *AdminAuth {
	return &AdminAuth{profiles: profiles, log: log}
}

func (a *AdminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(AdminHeader))
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing "+AdminHeader+" header")
			return
		}

		user, err := a.profiles.GetProfile(r.Context(), userID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrValidation) {
				writeError(w, http.StatusUnauthorized, "unknown user")
				return
			}
			logger.FromContext(r.Context(), a.log).InternalError("admin: profile lookup failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if user.Role != userdomain.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *user)))
	})
}

func WithUser(ctx context.Context, user userdomain.PublicUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (userdomain.PublicUser, bool) {
	user, ok := ctx.Value(userKey).(userdomain.PublicUser)
	if !ok || user.ID == "" {
		return userdomain.PublicUser{}, false
	}
	return user, true
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
