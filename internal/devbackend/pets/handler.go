package pets

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"pet-walks-client/internal/devbackend/middleware"
	"pet-walks-client/internal/ports/auth"
	"pet-walks-client/internal/validation"

	"github.com/go-chi/chi/v5"
)

const (
	maxUploadBytes = 5 << 20

	msgUnauthorized = "Inicia sesión para continuar"
	msgWalkerCreate = "Solo los clientes pueden registrar mascotas"
	msgBadForm      = "El formulario no es válido"
	msgBadPhoto     = "La foto debe ser una imagen JPG o PNG de hasta 5 MB"
	msgNotFound     = "Mascota no encontrada"
	msgInternal     = "Error interno del servidor"
)

var allowedPhotoTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
}

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Get("/{petID}/photo", getPetPhotoHandler(svc))
	})
}

type petResponse struct {
	ID               string    `json:"id"`
	OwnerUserID      int64     `json:"owner_user_id"`
	Name             string    `json:"name"`
	Breed            string    `json:"breed"`
	Zone             Zone      `json:"zone"`
	Age              int       `json:"age"`
	Description      string    `json:"description"`
	Comments         string    `json:"comments"`
	MedicalCondition string    `json:"medical_condition"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type messageResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Alta de mascota del cliente autenticado. multipart/form-data con los campos del wizard y la foto opcional en `photo`.
// @Tags pets
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param breed formData string true "Raza"
// @Param zone formData string true "Zona: norte, centro o sur"
// @Param name formData string true "Nombre (hasta 25 caracteres)"
// @Param age formData int true "Edad 0..20"
// @Param description formData string false "Descripción"
// @Param comments formData string false "Comentarios (hasta 250 caracteres)"
// @Param medical_condition formData string false "Condición médica"
// @Param photo formData file false "Foto JPG o PNG"
// @Success 201 {object} petResponse
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse
// @Failure 403 {object} messageResponse "paseadores no registran mascotas"
// @Router /api/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		if id.RoleID == auth.RoleWalker {
			writeMessage(w, http.StatusForbidden, msgWalkerCreate)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+(1<<20))
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeMessage(w, http.StatusBadRequest, msgBadForm)
			return
		}

		in := CreateInput{
			Name:             r.FormValue("name"),
			Breed:            r.FormValue("breed"),
			Zone:             r.FormValue("zone"),
			Age:              r.FormValue("age"),
			Description:      r.FormValue("description"),
			Comments:         r.FormValue("comments"),
			MedicalCondition: r.FormValue("medical_condition"),
		}

		photo, ctype, err := readPhoto(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, msgBadPhoto)
			return
		}
		in.Photo, in.PhotoContentType = photo, ctype

		p, err := svc.Create(r.Context(), id.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} petResponse
// @Failure 401 {object} messageResponse
// @Router /api/pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), id.UserID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, msgInternal)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Router /api/pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "petID"), id.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// getPetPhotoHandler godoc
// @Summary Foto de la mascota
// @Tags pets
// @Produce image/jpeg,image/png
// @Param Authorization header string true "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Success 200 {file} file
// @Failure 404 {object} messageResponse
// @Router /api/pets/{petID}/photo [get]
func getPetPhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "petID"), id.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !p.HasPhoto() {
			writeMessage(w, http.StatusNotFound, msgNotFound)
			return
		}

		w.Header().Set("Content-Type", p.PhotoContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(p.Photo)
	}
}

// readPhoto: sin archivo "photo" no es error. El tipo se detecta por contenido.
func readPhoto(r *http.Request) ([]byte, string, error) {
	f, _, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 || len(data) > maxUploadBytes {
		return nil, "", errors.New("photo size out of range")
	}

	ctype := http.DetectContentType(data)
	if _, ok := allowedPhotoTypes[ctype]; !ok {
		return nil, "", errors.New("photo type not allowed: " + ctype)
	}
	return data, ctype, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	var fe validation.FieldErrors
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: fe.Error(), Fields: fe})
	case errors.Is(err, ErrNotFound):
		writeMessage(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, msgBadForm)
	default:
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		ID:               p.ID,
		OwnerUserID:      p.OwnerUserID,
		Name:             p.Name,
		Breed:            p.Breed,
		Zone:             p.Zone,
		Age:              p.Age,
		Description:      p.Description,
		Comments:         p.Comments,
		MedicalCondition: p.MedicalCondition,
		CreatedAt:        p.CreatedAt,
	}
	if p.HasPhoto() {
		out.PhotoURL = "/api/pets/" + p.ID + "/photo"
	}
	return out
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeJSON repetido por módulo (accounts/pets); no vale un paquete aparte todavía.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
