package backend

import (
	"context"
	"net/http"
	"strings"

	"pet-walks-client/internal/platform/httpclient"
	"pet-walks-client/internal/ports/auth"
)

var (
	_ auth.TokenVerifier = (*Client)(nil)
	_ auth.Authenticator = (*Client)(nil)
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenUserResponse struct {
	Token string     `json:"token"`
	User  *auth.User `json:"user"`
}

func (r tokenUserResponse) valid() bool {
	return strings.TrimSpace(r.Token) != "" && r.User != nil
}

// Login implementa auth.Authenticator.
func (c *Client) Login(ctx context.Context, email, password string) (auth.LoginResult, error) {
	if !c.IsConfigured() {
		return auth.LoginResult{}, ErrNotConfigured
	}

	var out tokenUserResponse
	err := c.http.DoJSON(ctx, http.MethodPost, pathLogin, nil, loginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}, &out)
	if err != nil {
		return auth.LoginResult{}, c.translate("login", err)
	}
	if !out.valid() {
		return auth.LoginResult{}, &NetworkError{Message: msgInvalid, Kind: ErrBadResponse, Err: errMissingTokenOrUser}
	}

	return auth.LoginResult{Token: strings.TrimSpace(out.Token), User: *out.User}, nil
}

// VerifyToken implementa auth.TokenVerifier.
// Devuelve error ante fallas de red o parseo; el caller las trata como sesión inválida.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.VerifyResult, error) {
	if !c.IsConfigured() {
		return auth.InvalidSession, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.InvalidSession, ErrUnauthorized
	}

	var out auth.VerifyResult
	if err := c.http.DoJSON(ctx, http.MethodGet, pathVerifyToken, httpclient.Bearer(token), nil, &out); err != nil {
		return auth.InvalidSession, c.translate("verify_token", err)
	}
	return out, nil
}

// RegisterInput son los datos del formulario de registro (ya validados).
type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Password string      `json:"password"`
	RoleID   auth.RoleID `json:"role_id"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (auth.User, error) {
	if !c.IsConfigured() {
		return auth.User{}, ErrNotConfigured
	}

	var out struct {
		User *auth.User `json:"user"`
	}
	if err := c.http.DoJSON(ctx, http.MethodPost, pathRegister, nil, in, &out); err != nil {
		return auth.User{}, c.translate("register", err)
	}
	if out.User == nil {
		return auth.User{}, &NetworkError{Message: msgInvalid, Kind: ErrBadResponse, Err: errMissingTokenOrUser}
	}
	return *out.User, nil
}

// ForgotPassword pide el código de recuperación. Devuelve el mensaje del backend.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	var out struct {
		Message string `json:"message"`
	}
	err := c.http.DoJSON(ctx, http.MethodPost, pathForgotPassword, nil, map[string]string{
		"email": strings.TrimSpace(email),
	}, &out)
	if err != nil {
		return "", c.translate("forgot_password", err)
	}
	return out.Message, nil
}

type ResetPasswordInput struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// ResetPassword completa la recuperación; el backend responde con un token nuevo.
func (c *Client) ResetPassword(ctx context.Context, in ResetPasswordInput) (auth.LoginResult, error) {
	if !c.IsConfigured() {
		return auth.LoginResult{}, ErrNotConfigured
	}

	var out tokenUserResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, pathResetPassword, nil, in, &out); err != nil {
		return auth.LoginResult{}, c.translate("reset_password", err)
	}
	if !out.valid() {
		return auth.LoginResult{}, &NetworkError{Message: msgInvalid, Kind: ErrBadResponse, Err: errMissingTokenOrUser}
	}
	return auth.LoginResult{Token: strings.TrimSpace(out.Token), User: *out.User}, nil
}
