package petdraft

import (
	"encoding/json"
	"fmt"
)

// Field distingue "no enviado" de "enviado como null".
// Present=false: no tocar. Present=true && Value=nil: limpiar.
type Field[T any] struct {
	Present bool
	Value   *T
}

func Set[T any](v T) Field[T] { return Field[T]{Present: true, Value: &v} }

func Clear[T any]() Field[T] { return Field[T]{Present: true} }

func (f Field[T]) apply(dst **T) {
	if !f.Present {
		return
	}
	*dst = clonePtr(f.Value)
}

// Partial es lo que cada paso del wizard aporta al draft.
type Partial struct {
	Breed            Field[string]
	Zone             Field[Zone]
	Name             Field[string]
	Age              Field[int]
	Description      Field[string]
	Comments         Field[string]
	MedicalCondition Field[string]
	Photo            Field[Photo]
}

// UnmarshalJSON detecta presencia de cada key (mismo truco que el PATCH de pets:
// primero a map de RawMessage, después campo por campo).
func (p *Partial) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var out Partial
	if err := decodeField(raw, "breed", &out.Breed); err != nil {
		return err
	}
	if err := decodeField(raw, "zone", &out.Zone); err != nil {
		return err
	}
	if err := decodeField(raw, "name", &out.Name); err != nil {
		return err
	}
	if err := decodeField(raw, "age", &out.Age); err != nil {
		return err
	}
	if err := decodeField(raw, "description", &out.Description); err != nil {
		return err
	}
	if err := decodeField(raw, "comments", &out.Comments); err != nil {
		return err
	}
	if err := decodeField(raw, "medical_condition", &out.MedicalCondition); err != nil {
		return err
	}
	if err := decodeField(raw, "photo", &out.Photo); err != nil {
		return err
	}

	*p = out
	return nil
}

func decodeField[T any](raw map[string]json.RawMessage, key string, dst *Field[T]) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	dst.Present = true
	if string(v) == "null" {
		dst.Value = nil
		return nil
	}
	var val T
	if err := json.Unmarshal(v, &val); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	dst.Value = &val
	return nil
}
