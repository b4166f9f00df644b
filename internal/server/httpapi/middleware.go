package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkozlov/flowdeck/internal/server/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// authenticate validates the bearer token and stores the user id in the
// request context. Requests without a valid token are rejected with 401.
func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeDetail(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, a.secret)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext returns the authenticated user's id. Only valid inside
// handlers guarded by authenticate.
func userIDFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}
