package app

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"pet-walks-client/internal/adapters/backend"
	"pet-walks-client/internal/domain/petdraft"
	"pet-walks-client/internal/ports/petregistry"
	"pet-walks-client/internal/validation"
)

// Cada paso del wizard valida su parte y recién ahí hace Merge.
// El Aggregator no valida nada.

var allowedPhotoExt = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

const msgPhoto = "La foto debe ser un archivo .jpg o .png existente"

func (a *App) SetBreed(breed string) validation.FieldErrors {
	fe := validation.BreedStep(breed)
	if fe.OK() {
		a.Draft.Merge(petdraft.Partial{Breed: petdraft.Set(strings.TrimSpace(breed))})
	}
	return fe
}

func (a *App) SetZone(zone string) validation.FieldErrors {
	fe := validation.ZoneStep(zone)
	if fe.OK() {
		z, _ := validation.Zone(zone)
		a.Draft.Merge(petdraft.Partial{Zone: petdraft.Set(petdraft.Zone(z))})
	}
	return fe
}

func (a *App) SetProfile(name, age string) validation.FieldErrors {
	fe := validation.ProfileStep(name, age)
	if fe.OK() {
		n, _ := validation.PetName(name)
		years, _ := validation.ParseAge(age)
		a.Draft.Merge(petdraft.Partial{Name: petdraft.Set(n), Age: petdraft.Set(years)})
	}
	return fe
}

// SetDetails: los textos vacíos quedan en null.
func (a *App) SetDetails(description, comments, medicalCondition string) validation.FieldErrors {
	fe := validation.DetailsStep(description, comments, medicalCondition)
	if fe.OK() {
		a.Draft.Merge(petdraft.Partial{
			Description:      optionalText(description),
			Comments:         optionalText(comments),
			MedicalCondition: optionalText(medicalCondition),
		})
	}
	return fe
}

func (a *App) CurrentDraft() petdraft.Draft {
	return a.Draft.Draft()
}

// SetPhoto guarda la referencia al archivo local. path vacío quita la foto.
func (a *App) SetPhoto(path string) validation.FieldErrors {
	fe := validation.FieldErrors{}
	path = strings.TrimSpace(path)
	if path == "" {
		a.Draft.Merge(petdraft.Partial{Photo: petdraft.Clear[petdraft.Photo]()})
		return fe
	}

	ext := strings.ToLower(filepath.Ext(path))
	fi, err := os.Stat(path)
	if _, ok := allowedPhotoExt[ext]; !ok || err != nil || fi.IsDir() {
		fe["photo"] = msgPhoto
		return fe
	}

	a.Draft.Merge(petdraft.Partial{Photo: petdraft.Set(petdraft.Photo{
		Path:        path,
		FileName:    filepath.Base(path),
		ContentType: mime.TypeByExtension(ext),
	})})
	return fe
}

// SubmitDraft manda el draft completo al backend. Si sale bien lo resetea;
// si falla, el draft queda intacto para reintentar.
func (a *App) SubmitDraft(ctx context.Context) (petregistry.Pet, error) {
	token := a.Session.Token()
	if token == "" {
		return petregistry.Pet{}, ErrNotAuthenticated
	}
	if a.registrar == nil {
		return petregistry.Pet{}, backend.ErrNotConfigured
	}

	d := a.Draft.Draft()
	if missing := missingFields(d); len(missing) > 0 {
		return petregistry.Pet{}, fmt.Errorf("%w: %s", ErrIncompleteDraft, strings.Join(missing, ", "))
	}

	sub := petregistry.Submission{Draft: d}
	if d.Photo != nil {
		f, err := os.Open(d.Photo.Path)
		if err != nil {
			a.log.Warn("photo not readable", map[string]any{"path": d.Photo.Path, "error": err})
			return petregistry.Pet{}, errors.New(msgPhoto)
		}
		defer f.Close()
		sub.Photo = f
		sub.PhotoName = d.Photo.FileName
		sub.PhotoContentType = d.Photo.ContentType
	}

	pet, err := a.registrar.CreatePet(ctx, token, sub)
	if err != nil {
		return petregistry.Pet{}, err
	}

	a.Draft.Reset()
	a.log.Info("pet registered", map[string]any{"pet_id": pet.ID})
	return pet, nil
}

func missingFields(d petdraft.Draft) []string {
	var out []string
	if d.Breed == nil {
		out = append(out, "breed")
	}
	if d.Zone == nil {
		out = append(out, "zone")
	}
	if d.Name == nil {
		out = append(out, "name")
	}
	if d.Age == nil {
		out = append(out, "age")
	}
	return out
}

func optionalText(s string) petdraft.Field[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return petdraft.Clear[string]()
	}
	return petdraft.Set(s)
}
