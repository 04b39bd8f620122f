package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

const (
	HeaderUserID = "X-User-ID"
	HeaderRole   = "X-Canvas-Role"
)

// Logger creates a logging middleware
func Logger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", middleware.GetReqID(r.Context())),
				zap.String("remoteAddr", r.RemoteAddr),
			)
		})
	}
}

// Identity places the caller's user id and canvas role on the request
// context. Requests without a user id carry no identity and are rejected by
// the mediator; an unparseable role is rejected here.
func Identity() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(HeaderUserID)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			role := shared.RoleView
			if raw := r.Header.Get(HeaderRole); raw != "" {
				parsed, ok := shared.ParseRole(raw)
				if !ok {
					respondError(w, apperrors.Forbidden(apperrors.CodeUnknownRole, "unknown canvas role").
						WithDetails(raw).
						Build())
					return
				}
				role = parsed
			}

			ctx := shared.WithIdentity(r.Context(), shared.Identity{UserID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
