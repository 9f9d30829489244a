package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mneme/internal/auth"
	"mneme/internal/domain/models"
	"mneme/internal/domain/repositories"
	"mneme/internal/httputil"
)

// Auth resolves the request's principal from the Authorization header.
//
// Requests without a bearer token pass through as anonymous (nil
// principal); read endpoints serve public content to them and the
// service layer rejects anonymous writes. Requests with a token must
// carry a valid one, otherwise the request is rejected outright so a
// caller never silently degrades to anonymous. On success the user row
// is upserted and the principal's group memberships are loaded for
// grant evaluation.
func Auth(verifier auth.JWTVerifier, userRepo repositories.UserRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			userID := claims.GetUserID()

			now := time.Now()
			user := &models.User{
				ID:          userID,
				Username:    claims.Email,
				DisplayName: claims.Email,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := userRepo.Upsert(r.Context(), user); err != nil {
				logger.Error("failed to upsert user", "user_id", userID, "error", err)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			groupIDs, err := userRepo.GroupIDs(r.Context(), userID)
			if err != nil {
				logger.Error("failed to load group memberships", "user_id", userID, "error", err)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			principal := &models.Principal{
				ID:       userID,
				GroupIDs: groupIDs,
			}

			next.ServeHTTP(w, httputil.WithPrincipal(r, principal))
		})
	}
}
