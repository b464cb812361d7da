package auth

import "context"

// TokenVerifier valida un bearer token contra el backend.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (VerifyResult, error)
}

// Authenticator canjea credenciales por un token + usuario.
// Los errores que devuelve deben tener un mensaje apto para mostrar al usuario.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
}
