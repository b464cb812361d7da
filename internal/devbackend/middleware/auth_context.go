package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-walks-client/internal/ports/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity es el usuario detrás del bearer token.
type Identity struct {
	UserID int64
	RoleID auth.RoleID
}

// Verifier valida un bearer token y devuelve la identidad.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// AuthContext:
// - Si viene Bearer token válido => setea la identidad en el contexto.
// - Si no, el request sigue igual; los handlers deciden si exigen auth.
func AuthContext(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r.Header.Get("Authorization"))
			if token == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok && id.UserID > 0
}

// BearerToken extrae el token de "Authorization: Bearer <token>".
func BearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
