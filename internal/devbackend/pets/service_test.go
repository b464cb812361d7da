package pets

import (
	"context"
	"errors"
	"testing"

	"pet-walks-client/internal/validation"
)

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Pet{}} }

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID int64) ([]Pet, error) {
	var out []Pet
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestService_GetOwned_ForeignPetIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo())

	p, err := svc.Create(ctx, 1, CreateInput{Name: "Max", Breed: "Labrador", Zone: "Norte", Age: "2"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Zone != ZoneNorth {
		t.Fatalf("expected zone normalized, got %q", p.Zone)
	}

	if got, err := svc.GetOwned(ctx, p.ID, 1); err != nil || got.ID != p.ID {
		t.Fatalf("owner should see the pet, got %#v err=%v", got, err)
	}
	if _, err := svc.GetOwned(ctx, p.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another owner, got %v", err)
	}
	if _, err := svc.GetOwned(ctx, "missing", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), 1, CreateInput{Name: "", Breed: "Pug", Zone: "este", Age: "30"})
	var fe validation.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	for _, k := range []string{"name", "zone", "age"} {
		if fe[k] == "" {
			t.Fatalf("expected error on %s, got %v", k, fe)
		}
	}
	if fe["breed"] != "" {
		t.Fatalf("breed is valid, got %q", fe["breed"])
	}

	if _, err := svc.Create(context.Background(), 0, CreateInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without owner, got %v", err)
	}
}
