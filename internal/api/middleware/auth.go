package middleware

import (
	"context"
	"net/http"

	"campdir/internal/app/service"
	"campdir/internal/common"
	"campdir/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const identityCtxKey contextKey = "identity"

// Authenticator guards protected routes: a verified bearer token is
// required, and the resolved identity is attached to the request context.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
			return
		}
		role, err := security.GetUserRoleFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
			return
		}

		ctx := context.WithValue(r.Context(), identityCtxKey, service.Identity{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles rejects authenticated callers whose role is not in the
// allowed set.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
				return
			}
			if _, ok := allowed[identity.Role]; !ok {
				common.RespondWithError(w, http.StatusForbidden,
					"User role "+identity.Role+" is unauthorized to access this route")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func IdentityFromContext(ctx context.Context) (service.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey).(service.Identity)
	return identity, ok
}
