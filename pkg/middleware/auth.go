package middleware

import (
	"net/http"

	"marketplace-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// Identity reads the caller's identity from the headers the edge proxy injects
// after verifying credentials. Requests without them stay anonymous; role guards
// downstream decide whether that matters.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDHeader := r.Header.Get(HeaderUserID)
			role := r.Header.Get(HeaderUserRole)
			if userIDHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.Parse(userIDHeader)
			if err != nil {
				logger.Warn("Malformed identity header",
					zap.String("user_id", userIDHeader),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid identity")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose identity is missing or carries a different role.
func RequireRole(role string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			actual, _ := utils.GetRoleFromContext(r.Context())
			if actual != role {
				logger.Warn("Role check failed",
					zap.String("required", role),
					zap.String("actual", actual),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, role+" access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
