package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-walks-client/internal/domain/petdraft"
	"pet-walks-client/internal/ports/auth"
	"pet-walks-client/internal/ports/petregistry"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := NewClient(Config{BaseURL: ts.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathLogin || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req loginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "ana@example.com" || req.Password != "Secret123" {
			t.Errorf("unexpected body %#v", req)
		}
		_, _ = w.Write([]byte(`{"token":"tok","user":{"id":7,"name":"Ana","email":"ana@example.com","role_id":2,"enabled":true}}`))
	})

	res, err := c.Login(context.Background(), " ana@example.com ", "Secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "tok" || res.User.ID != 7 || res.User.RoleID != auth.RoleClient {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestLogin_BackendMessageIsDisplayable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Correo o contraseña incorrectos"}`))
	})

	_, err := c.Login(context.Background(), "ana@example.com", "bad")
	if err == nil || err.Error() != "Correo o contraseña incorrectos" {
		t.Fatalf("expected backend message, got %v", err)
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected errors.Is ErrUnauthorized")
	}
}

func TestLogin_MalformedPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":""}`))
	})

	_, err := c.Login(context.Background(), "ana@example.com", "x")
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
	if err.Error() != msgInvalid {
		t.Fatalf("expected displayable message, got %q", err.Error())
	}
}

func TestVerifyToken(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok" {
				t.Errorf("missing bearer")
			}
			_, _ = w.Write([]byte(`{"success":true,"expired":false}`))
		})
		res, err := c.VerifyToken(context.Background(), "tok")
		if err != nil || !res.Success || res.Expired {
			t.Fatalf("unexpected %#v err=%v", res, err)
		}
	})

	t.Run("http 500", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		res, err := c.VerifyToken(context.Background(), "tok")
		if err == nil {
			t.Fatalf("expected error")
		}
		if res != auth.InvalidSession {
			t.Fatalf("expected InvalidSession, got %#v", res)
		}
	})

	t.Run("not json", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>proxy</html>`))
		})
		res, err := c.VerifyToken(context.Background(), "tok")
		if !errors.Is(err, ErrBadResponse) || res != auth.InvalidSession {
			t.Fatalf("expected ErrBadResponse + InvalidSession, got %#v %v", res, err)
		}
	})
}

func TestVerifyToken_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	c, _ := NewClient(Config{BaseURL: url, Timeout: time.Second})
	_, err := c.VerifyToken(context.Background(), "tok")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if err.Error() != msgUnreachable {
		t.Fatalf("expected displayable message, got %q", err.Error())
	}
}

func TestCreatePet_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		for k, want := range map[string]string{"name": "Max", "age": "2", "zone": "norte", "breed": "Labrador"} {
			if got := r.FormValue(k); got != want {
				t.Errorf("field %s: expected %q, got %q", k, want, got)
			}
		}
		if _, ok := r.MultipartForm.Value["comments"]; ok {
			t.Errorf("nil fields must not be sent")
		}
		f, _, err := r.FormFile("photo")
		if err != nil {
			t.Errorf("photo: %v", err)
		} else {
			b, _ := io.ReadAll(f)
			if string(b) != "img" {
				t.Errorf("unexpected photo bytes %q", b)
			}
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pet-1","name":"Max"}`))
	})

	zone := petdraft.ZoneNorth
	name, breed, age := "Max", "Labrador", 2
	pet, err := c.CreatePet(context.Background(), "tok", petregistry.Submission{
		Draft:            petdraft.Draft{Name: &name, Breed: &breed, Age: &age, Zone: &zone},
		Photo:            strings.NewReader("img"),
		PhotoName:        "max.jpg",
		PhotoContentType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("CreatePet: %v", err)
	}
	if pet.ID != "pet-1" {
		t.Fatalf("unexpected pet %#v", pet)
	}
}

func TestCreatePet_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"La edad debe estar entre 0 y 20"}`))
	})

	_, err := c.CreatePet(context.Background(), "tok", petregistry.Submission{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected *APIError 400, got %v", err)
	}
	if apiErr.Error() != "La edad debe estar entre 0 y 20" {
		t.Fatalf("unexpected message %q", apiErr.Error())
	}
}

func TestGenericMessageWhenBodyHasNone(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`bad gateway`))
	})

	_, err := c.ForgotPassword(context.Background(), "ana@example.com")
	if err == nil || err.Error() != msgGeneric {
		t.Fatalf("expected generic message, got %v", err)
	}
}
