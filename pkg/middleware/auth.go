package middleware

import (
	"context"
	"net/http"

	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

// AdminChecker reports whether the admin login flag is set.
type AdminChecker interface {
	IsAdmin(ctx context.Context) (bool, error)
}

// AdminGate rejects requests while the box office is not logged in as admin.
func AdminGate(checker AdminChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isAdmin, err := checker.IsAdmin(r.Context())
			if err != nil {
				logger.Error("Admin check: failed to read login flag",
					zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if !isAdmin {
				logger.Warn("Admin check: not logged in",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method))
				utils.ResponseUnauthorized(w, "Admin login required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
