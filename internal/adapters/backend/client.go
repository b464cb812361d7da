package backend

import (
	"errors"
	"strings"
	"time"

	"pet-walks-client/internal/platform/httpclient"
	"pet-walks-client/internal/platform/logger"
)

var (
	ErrNotConfigured = errors.New("backend client not configured")
	ErrUnauthorized  = errors.New("backend unauthorized")
	ErrUpstream      = errors.New("backend upstream error")
	ErrBadResponse   = errors.New("backend returned an invalid response")
)

// Mensajes genéricos cuando el backend no manda "message".
const (
	msgGeneric     = "Ocurrió un error inesperado, intenta de nuevo"
	msgUnreachable = "No se pudo conectar con el servidor"
	msgInvalid     = "Respuesta inválida del servidor"
	msgSession     = "Tu sesión expiró, inicia sesión de nuevo"
)

// Endpoints del backend REST.
const (
	pathLogin          = "/api/auth/login"
	pathVerifyToken    = "/api/auth/verify-token"
	pathRegister       = "/api/auth/register"
	pathForgotPassword = "/api/auth/forgot-password"
	pathResetPassword  = "/api/auth/reset-password"
	pathPets           = "/api/pets"
)

// APIError es una respuesta no-2xx del backend.
// Error() devuelve el mensaje tal cual para mostrarlo en pantalla.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrUnauthorized) sobre 401/403.
func (e *APIError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.StatusCode == 401 || e.StatusCode == 403
	}
	return false
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  logger.Logger
}

// Client implementa los colaboradores del cliente: auth.TokenVerifier,
// auth.Authenticator y petregistry.Registrar.
type Client struct {
	http *httpclient.Client
	log  logger.Logger
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	lg := cfg.Logger
	if lg == nil {
		lg = logger.Nop()
	}
	return &Client{
		http: hc,
		log:  lg.With(map[string]any{"component": "backend"}),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// translate convierte errores de transporte / HTTP en errores mostrables.
func (c *Client) translate(op string, err error) error {
	if err == nil {
		return nil
	}

	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		msg := he.Message
		if msg == "" {
			if he.StatusCode == 401 {
				msg = msgSession
			} else {
				msg = msgGeneric
			}
		}
		c.log.Warn("backend rejected request", map[string]any{"op": op, "status": he.StatusCode})
		return &APIError{StatusCode: he.StatusCode, Message: msg}
	}

	if errors.Is(err, httpclient.ErrDecode) {
		c.log.Warn("backend response not parseable", map[string]any{"op": op, "error": err})
		return &NetworkError{Message: msgInvalid, Kind: ErrBadResponse, Err: err}
	}

	c.log.Warn("backend unreachable", map[string]any{"op": op, "error": err})
	return &NetworkError{Message: msgUnreachable, Kind: ErrUpstream, Err: err}
}

// NetworkError es una falla de transporte o de parseo.
// Error() es el texto para el usuario; Unwrap expone el sentinel y la causa.
type NetworkError struct {
	Message string
	Kind    error
	Err     error
}

func (e *NetworkError) Error() string { return e.Message }

func (e *NetworkError) Unwrap() []error { return []error{e.Kind, e.Err} }
