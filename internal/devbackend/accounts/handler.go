package accounts

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-walks-client/internal/devbackend/middleware"
	"pet-walks-client/internal/ports/auth"
	"pet-walks-client/internal/validation"

	"github.com/go-chi/chi/v5"
)

const (
	msgInvalidJSON   = "El cuerpo de la solicitud no es JSON válido"
	msgMissingToken  = "Falta el token de autorización"
	msgEmailTaken    = "El correo ya está registrado"
	msgInternal      = "Error interno del servidor"
	msgResetCodeSent = "Si el correo está registrado, te enviamos un código de recuperación"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(svc))
		ar.Get("/verify-token", verifyTokenHandler(svc))
		ar.Post("/register", registerHandler(svc))
		ar.Post("/forgot-password", forgotPasswordHandler(svc))
		ar.Post("/reset-password", resetPasswordHandler(svc))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenUserResponse struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Password string      `json:"password"`
	RoleID   auth.RoleID `json:"role_id"`
}

type userResponse struct {
	User auth.User `json:"user"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type messageResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Valida correo y contraseña. Devuelve el bearer token y el usuario.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} tokenUserResponse
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse "credenciales inválidas"
// @Failure 403 {object} messageResponse "cuenta deshabilitada"
// @Router /api/auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		token, u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tokenUserResponse{Token: token, User: u.Public()})
	}
}

// verifyTokenHandler godoc
// @Summary Verificar token
// @Description Indica si el bearer token sigue vigente. expired=true solo cuando venció.
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} auth.VerifyResult
// @Failure 401 {object} messageResponse
// @Router /api/auth/verify-token [get]
func verifyTokenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.BearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, msgMissingToken)
			return
		}
		writeJSON(w, http.StatusOK, svc.VerifyToken(r.Context(), token))
	}
}

// registerHandler godoc
// @Summary Registrar cuenta
// @Description Crea una cuenta de cliente (role_id 2) o paseador (role_id 3).
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de la cuenta"
// @Success 201 {object} userResponse
// @Failure 400 {object} messageResponse "validación"
// @Failure 409 {object} messageResponse "correo duplicado"
// @Router /api/auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
			RoleID:   req.RoleID,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, userResponse{User: u.Public()})
	}
}

// forgotPasswordHandler godoc
// @Summary Pedir código de recuperación
// @Description Genera un código de un solo uso. La respuesta no revela si el correo existe.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body forgotPasswordRequest true "Correo"
// @Success 200 {object} messageResponse
// @Failure 400 {object} messageResponse
// @Router /api/auth/forgot-password [post]
func forgotPasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}
		if err := svc.ForgotPassword(r.Context(), req.Email); err != nil {
			writeServiceError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, msgResetCodeSent)
	}
}

// resetPasswordHandler godoc
// @Summary Restablecer contraseña
// @Description Consume el código de recuperación, cambia la contraseña y devuelve un token nuevo.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body resetPasswordRequest true "Correo, código y contraseña nueva"
// @Success 200 {object} tokenUserResponse
// @Failure 400 {object} messageResponse "validación / código inválido"
// @Router /api/auth/reset-password [post]
func resetPasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		token, u, err := svc.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tokenUserResponse{Token: token, User: u.Public()})
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var fe validation.FieldErrors
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: fe.Error(), Fields: fe})
	case errors.Is(err, ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrDisabled):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrEmailTaken):
		writeMessage(w, http.StatusConflict, msgEmailTaken)
	case errors.Is(err, ErrInvalidCode), errors.Is(err, ErrInvalidRole):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
