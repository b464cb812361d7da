package auth

import "strings"

// RoleID es el identificador numérico de rol que usa el backend.
type RoleID int

const (
	RoleAdmin  RoleID = 1
	RoleClient RoleID = 2
	RoleWalker RoleID = 3
)

func (r RoleID) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleClient:
		return "cliente"
	case RoleWalker:
		return "paseador"
	default:
		return "desconocido"
	}
}

// User es la identidad del actor logueado, tal como la devuelve el backend
// y tal como se persiste (serializada) en el credential store.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	RoleID   RoleID `json:"role_id"`
	RoleName string `json:"role_name,omitempty"`
	Enabled  bool   `json:"enabled"`
}

// DisplayRole prefiere el nombre que manda el backend.
func (u User) DisplayRole() string {
	if n := strings.TrimSpace(u.RoleName); n != "" {
		return n
	}
	return u.RoleID.String()
}

// VerifyResult es la respuesta del endpoint de verificación de token.
type VerifyResult struct {
	Success bool `json:"success"`
	Expired bool `json:"expired"`
}

// InvalidSession es como se trata cualquier falla de red o parseo al verificar.
var InvalidSession = VerifyResult{Success: false, Expired: true}

// LoginResult es el par token + usuario que entrega el login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
