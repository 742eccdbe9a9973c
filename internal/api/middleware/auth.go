package middleware

import (
	"context"
	"errors"
	"net/http"

	"quizzical/internal/app/service"
	"quizzical/internal/common"
	"quizzical/internal/domain/model"
)

type contextKey string

const UserCtxKey contextKey = "user"

// The 401 body never reveals whether the username existed.
const badCredentialsMessage = "Incorrect username or password"

// BasicAuth authenticates the request's Basic credentials against the user
// store and puts the matched user in the request context.
func BasicAuth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w)
				return
			}

			user, err := authService.Authenticate(r.Context(), username, password)
			if err != nil {
				if errors.Is(err, common.ErrUnauthorized) {
					unauthorized(w)
					return
				}
				common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="quizzical"`)
	common.RespondWithError(w, http.StatusUnauthorized, badCredentialsMessage)
}

// RequireRead rejects users whose read flag is unset. Only mounted when
// permission enforcement is enabled.
func RequireRead(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok || !user.Read {
			common.RespondWithError(w, http.StatusForbidden, "Read permission required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireWrite rejects users whose write flag is unset.
func RequireWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok || !user.Write {
			common.RespondWithError(w, http.StatusForbidden, "Write permission required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get the authenticated user from context
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*model.User)
	return user, ok
}
