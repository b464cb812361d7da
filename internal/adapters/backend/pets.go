package backend

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"pet-walks-client/internal/domain/petdraft"
	"pet-walks-client/internal/platform/httpclient"
	"pet-walks-client/internal/ports/petregistry"
)

var _ petregistry.Registrar = (*Client)(nil)

var errMissingTokenOrUser = errors.New("response missing token or user")

// CreatePet implementa petregistry.Registrar: multipart con todos los campos
// del draft y la foto como archivo "photo" (opcional).
func (c *Client) CreatePet(ctx context.Context, token string, in petregistry.Submission) (petregistry.Pet, error) {
	if !c.IsConfigured() {
		return petregistry.Pet{}, ErrNotConfigured
	}

	var files []httpclient.FilePart
	if in.Photo != nil {
		files = append(files, httpclient.FilePart{
			Field:       "photo",
			FileName:    in.PhotoName,
			ContentType: in.PhotoContentType,
			Content:     in.Photo,
		})
	}

	var out petregistry.Pet
	err := c.http.DoMultipart(ctx, http.MethodPost, pathPets, httpclient.Bearer(token), draftFields(in.Draft), files, &out)
	if err != nil {
		return petregistry.Pet{}, c.translate("create_pet", err)
	}
	if out.ID == "" {
		return petregistry.Pet{}, &NetworkError{Message: msgInvalid, Kind: ErrBadResponse, Err: errors.New("response missing pet id")}
	}
	return out, nil
}

// ListPets trae las mascotas del usuario autenticado.
func (c *Client) ListPets(ctx context.Context, token string) ([]petregistry.Pet, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	out := make([]petregistry.Pet, 0)
	if err := c.http.DoJSON(ctx, http.MethodGet, pathPets, httpclient.Bearer(token), nil, &out); err != nil {
		return nil, c.translate("list_pets", err)
	}
	return out, nil
}

// draftFields aplana el draft a campos de formulario. Los nil no se mandan.
func draftFields(d petdraft.Draft) map[string]string {
	f := map[string]string{}
	put := func(k string, v *string) {
		if v != nil {
			f[k] = *v
		}
	}
	put("breed", d.Breed)
	put("name", d.Name)
	put("description", d.Description)
	put("comments", d.Comments)
	put("medical_condition", d.MedicalCondition)
	if d.Zone != nil {
		f["zone"] = string(*d.Zone)
	}
	if d.Age != nil {
		f["age"] = strconv.Itoa(*d.Age)
	}
	return f
}
