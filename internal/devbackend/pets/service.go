package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-walks-client/internal/validation"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// CreateInput llega como texto del multipart; Age se parsea acá.
type CreateInput struct {
	Name             string
	Breed            string
	Zone             string
	Age              string
	Description      string
	Comments         string
	MedicalCondition string

	Photo            []byte
	PhotoContentType string
}

// Create aplica las mismas reglas que el wizard del cliente.
func (s *Service) Create(ctx context.Context, ownerUserID int64, in CreateInput) (Pet, error) {
	if ownerUserID <= 0 {
		return Pet{}, ErrInvalidInput
	}

	fe := validation.FieldErrors{}
	for k, v := range validation.BreedStep(in.Breed) {
		fe[k] = v
	}
	for k, v := range validation.ZoneStep(in.Zone) {
		fe[k] = v
	}
	for k, v := range validation.ProfileStep(in.Name, in.Age) {
		fe[k] = v
	}
	for k, v := range validation.DetailsStep(in.Description, in.Comments, in.MedicalCondition) {
		fe[k] = v
	}
	if !fe.OK() {
		return Pet{}, fe
	}

	name, _ := validation.PetName(in.Name)
	age, _ := validation.ParseAge(in.Age)
	zone, _ := validation.Zone(in.Zone)

	now := s.now()
	p := Pet{
		ID:               uuid.NewString(),
		OwnerUserID:      ownerUserID,
		Name:             name,
		Breed:            strings.TrimSpace(in.Breed),
		Zone:             Zone(zone),
		Age:              age,
		Description:      strings.TrimSpace(in.Description),
		Comments:         strings.TrimSpace(in.Comments),
		MedicalCondition: strings.TrimSpace(in.MedicalCondition),
		Photo:            in.Photo,
		PhotoContentType: in.PhotoContentType,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// GetOwned devuelve la mascota solo si pertenece al usuario.
// Una mascota ajena se reporta igual que una inexistente.
func (s *Service) GetOwned(ctx context.Context, id string, ownerUserID int64) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != ownerUserID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID int64) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}
