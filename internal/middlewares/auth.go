package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/course-api/internal/logger"
	"github.com/sbilibin2017/course-api/internal/models"
	"github.com/sbilibin2017/course-api/internal/services"
)

const basicRealm = `Basic realm="course-api"`

// Authenticator resolves Basic Auth credentials to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.UserDB, error)
}

// AuthMiddleware returns a middleware that requires valid Basic Auth credentials.
// The authenticated user is stored in the request context.
func AuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			email, password, ok := r.BasicAuth()
			if !ok {
				log.Warnw("authentication failed", "reason", "auth header not found")
				denyAccess(w)
				return
			}

			user, err := auth.Authenticate(ctx, email, password)
			switch {
			case errors.Is(err, services.ErrUserDoesNotExist):
				log.Warnw("authentication failed", "reason", "user not found", "email", email)
				denyAccess(w)
				return
			case errors.Is(err, services.ErrInvalidCredentials):
				log.Warnw("authentication failed", "reason", "wrong password", "email", email)
				denyAccess(w)
				return
			case err != nil:
				log.Errorw("authentication failed", "error", err)
				writeInternalError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUserToContext(ctx, user)))
		})
	}
}

func denyAccess(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", basicRealm)
	writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Access Denied"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type userKey struct{}

// SetUserToContext stores the authenticated user in the context.
func SetUserToContext(ctx context.Context, user *models.UserDB) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*models.UserDB, bool) {
	user, ok := ctx.Value(userKey{}).(*models.UserDB)
	return user, ok && user != nil
}
