package credentials

import "context"

// Claves lógicas del store. No se usa ninguna otra.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store es el almacenamiento seguro y durable de credenciales del dispositivo.
// Get devuelve ok=false si la clave no existe (no es error).
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
