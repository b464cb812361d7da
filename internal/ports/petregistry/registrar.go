package petregistry

import (
	"context"
	"io"
	"time"

	"pet-walks-client/internal/domain/petdraft"
)

// Submission es el draft completo listo para el endpoint de alta.
// Photo es opcional; si viene, se manda como archivo del multipart.
type Submission struct {
	Draft            petdraft.Draft
	Photo            io.Reader
	PhotoName        string
	PhotoContentType string
}

// Pet es el registro creado que devuelve el backend.
type Pet struct {
	ID               string    `json:"id"`
	OwnerUserID      int64     `json:"owner_user_id"`
	Name             string    `json:"name"`
	Breed            string    `json:"breed"`
	Zone             string    `json:"zone"`
	Age              int       `json:"age"`
	Description      string    `json:"description"`
	Comments         string    `json:"comments"`
	MedicalCondition string    `json:"medical_condition"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Registrar da de alta mascotas en el backend con el bearer del usuario.
type Registrar interface {
	CreatePet(ctx context.Context, token string, in Submission) (Pet, error)
}
