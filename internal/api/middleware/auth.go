package middleware

import (
	"context"
	"net/http"

	"tdsc_backend/internal/common"
	"tdsc_backend/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const UserIDCtxKey contextKey = "userID"

// Identify is the single capability check: if the request carried a token
// that jwtauth.Verifier accepted, the user id moves into the context;
// otherwise the request proceeds anonymously. Routes that need an identity
// layer RequireUser on top.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err == nil && token != nil {
			if userID, cerr := security.UserIDFromClaims(claims); cerr == nil {
				ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser converts a missing identity into an authentication error
// with a challenge header. Expired, invalid, and absent tokens all land
// here the same way.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserIDFromContext(r.Context()); !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthenticated.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserIDFromContext returns the authenticated caller's id, if any.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}
