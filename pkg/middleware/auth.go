package middleware

import (
	"context"
	"househunt/pkg/auth"
	apperrors "househunt/pkg/errors"
	httputil "househunt/pkg/http"
	"househunt/pkg/logger"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	Email string
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// RequireAuth verifies the bearer token before calling next. A missing header
// is UNAUTHENTICATED, any verification failure is INVALID_TOKEN. Both are 401.
func RequireAuth(verifier auth.Verifier, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			token, ok := httputil.BearerToken(r)
			if !ok {
				log.Warn("Missing bearer token",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
				)
				_ = httputil.WriteError(w, apperrors.Unauthenticated("Authorization header with a bearer token is required"))
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				log.Warn("Rejected bearer token",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				_ = httputil.WriteError(w, apperrors.InvalidToken("Invalid or expired token", err))
				return
			}

			ctx := WithIdentity(r.Context(), Identity{Email: claims.Email})
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// RequireOwner rejects requests whose path parameter param does not name the
// authenticated caller. It must run inside RequireAuth.
func RequireOwner(param string) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				_ = httputil.WriteError(w, apperrors.Unauthenticated("Authentication required"))
				return
			}
			if !SameEmail(id.Email, ps.ByName(param)) {
				_ = httputil.WriteError(w, apperrors.Forbidden("You can only access your own resources"))
				return
			}
			next(w, r, ps)
		}
	}
}

func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
