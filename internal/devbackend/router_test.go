package devbackend_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"pet-walks-client/internal/devbackend"
	"pet-walks-client/internal/devbackend/accounts"
	"pet-walks-client/internal/ports/auth"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000000000000000")

type codeBox struct {
	mu    sync.Mutex
	codes map[string]string
}

func (b *codeBox) put(email, code string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.codes[email] = code
}

func (b *codeBox) get(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.codes[email]
}

func newServer(t *testing.T) (*httptest.Server, *codeBox) {
	t.Helper()

	tokens, err := accounts.NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	box := &codeBox{codes: map[string]string{}}

	ts := httptest.NewServer(devbackend.NewRouter(devbackend.Options{
		Tokens:      tokens,
		OnResetCode: box.put,
		Seed: []accounts.RegisterInput{{
			Name:     "Paseador Demo",
			Email:    "walker@paseos.dev",
			Phone:    "5512345678",
			Password: "Walker123",
			RoleID:   auth.RoleWalker,
		}},
	}))
	t.Cleanup(ts.Close)
	return ts, box
}

func TestHTTP_EndToEnd_RegisterLoginCreatePet(t *testing.T) {
	ts, _ := newServer(t)

	// 1) Registro de cliente
	{
		st, body := doJSON(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
			"name":     "Ana",
			"email":    "Ana@Example.com",
			"phone":    "55 1234 5678",
			"password": "Secret123",
			"role_id":  2,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 register, got %d body=%s", st, body)
		}
		var resp struct {
			User auth.User `json:"user"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.User.Email != "ana@example.com" || resp.User.Phone != "5512345678" || resp.User.RoleID != auth.RoleClient {
			t.Fatalf("unexpected user %#v", resp.User)
		}
	}

	// 2) Login
	token := login(t, ts.URL, "ana@example.com", "Secret123")

	// 3) Token vigente
	{
		st, body := doJSON(t, ts.URL, "GET", "/api/auth/verify-token", token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 verify, got %d", st)
		}
		var res auth.VerifyResult
		_ = json.Unmarshal(body, &res)
		if !res.Success || res.Expired {
			t.Fatalf("expected valid token, got %#v", res)
		}
	}

	// 4) Alta con foto
	petID := ""
	{
		st, body := doMultipart(t, ts.URL, token, map[string]string{
			"breed": "Labrador",
			"zone":  "norte",
			"name":  "Max",
			"age":   "2",
		}, pngHeader)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create pet, got %d body=%s", st, body)
		}
		var resp struct {
			ID       string `json:"id"`
			Zone     string `json:"zone"`
			Age      int    `json:"age"`
			PhotoURL string `json:"photo_url"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" || resp.Zone != "norte" || resp.Age != 2 || resp.PhotoURL == "" {
			t.Fatalf("unexpected pet body=%s", body)
		}
		petID = resp.ID
	}

	// 5) Listado
	{
		st, body := doJSON(t, ts.URL, "GET", "/api/pets", token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var items []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0].ID != petID {
			t.Fatalf("unexpected list body=%s", body)
		}
	}

	// 6) Foto
	{
		req, _ := http.NewRequest("GET", ts.URL+"/api/pets/"+petID+"/photo", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("get photo: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK || res.Header.Get("Content-Type") != "image/png" {
			t.Fatalf("unexpected photo response %d %q", res.StatusCode, res.Header.Get("Content-Type"))
		}
	}

	// 7) Otro usuario no ve la mascota ni su foto: 404 igual que un id inexistente
	{
		walker := login(t, ts.URL, "walker@paseos.dev", "Walker123")
		for _, path := range []string{"/api/pets/" + petID, "/api/pets/" + petID + "/photo", "/api/pets/no-existe"} {
			st, _ := doJSON(t, ts.URL, "GET", path, walker, nil)
			if st != http.StatusNotFound {
				t.Fatalf("expected 404 for %s, got %d", path, st)
			}
		}
	}
}

func TestHTTP_Login_WrongPassword(t *testing.T) {
	ts, _ := newServer(t)

	st, body := doJSON(t, ts.URL, "POST", "/api/auth/login", "", map[string]any{
		"email":    "walker@paseos.dev",
		"password": "nope",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", st)
	}
	var resp struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Message != accounts.ErrInvalidCredentials.Error() {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestHTTP_Register_DuplicateAndInvalid(t *testing.T) {
	ts, _ := newServer(t)

	st, _ := doJSON(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
		"name": "Otro", "email": "walker@paseos.dev", "phone": "5512345678",
		"password": "Secret123", "role_id": 3,
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate email, got %d", st)
	}

	st, body := doJSON(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
		"name": "", "email": "bad", "phone": "12", "password": "short", "role_id": 2,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid form, got %d", st)
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	_ = json.Unmarshal(body, &resp)
	for _, f := range []string{"name", "email", "phone", "password"} {
		if resp.Fields[f] == "" {
			t.Fatalf("expected field error for %s, got %#v", f, resp.Fields)
		}
	}

	st, _ = doJSON(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
		"name": "Root", "email": "root@paseos.dev", "phone": "5512345678",
		"password": "Secret123", "role_id": 1,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for admin self-registration, got %d", st)
	}
}

func TestHTTP_ForgotAndResetPassword(t *testing.T) {
	ts, box := newServer(t)

	st, _ := doJSON(t, ts.URL, "POST", "/api/auth/forgot-password", "", map[string]any{"email": "walker@paseos.dev"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 forgot, got %d", st)
	}
	code := box.get("walker@paseos.dev")
	if code == "" {
		t.Fatalf("expected reset code to be issued")
	}

	// Correo desconocido: misma respuesta, sin código
	st, _ = doJSON(t, ts.URL, "POST", "/api/auth/forgot-password", "", map[string]any{"email": "nadie@paseos.dev"})
	if st != http.StatusOK || box.get("nadie@paseos.dev") != "" {
		t.Fatalf("unknown email must not reveal anything")
	}

	st, _ = doJSON(t, ts.URL, "POST", "/api/auth/reset-password", "", map[string]any{
		"email": "walker@paseos.dev", "code": "WRONG123", "new_password": "NewPass123",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 wrong code, got %d", st)
	}

	// Un intento fallido no invalida el código
	st, body := doJSON(t, ts.URL, "POST", "/api/auth/reset-password", "", map[string]any{
		"email": "walker@paseos.dev", "code": code, "new_password": "NewPass123",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 reset, got %d body=%s", st, body)
	}

	// Código de un solo uso
	st, _ = doJSON(t, ts.URL, "POST", "/api/auth/reset-password", "", map[string]any{
		"email": "walker@paseos.dev", "code": code, "new_password": "Another123",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 reused code, got %d", st)
	}

	login(t, ts.URL, "walker@paseos.dev", "NewPass123")
}

func TestHTTP_CreatePet_Rules(t *testing.T) {
	ts, _ := newServer(t)

	st, _ := doMultipart(t, ts.URL, "", map[string]string{"name": "Max"}, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", st)
	}

	walker := login(t, ts.URL, "walker@paseos.dev", "Walker123")
	st, _ = doMultipart(t, ts.URL, walker, map[string]string{
		"breed": "Pug", "zone": "sur", "name": "Toby", "age": "3",
	}, nil)
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 for walker, got %d", st)
	}

	doJSON(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "phone": "5512345678",
		"password": "Secret123", "role_id": 2,
	})
	client := login(t, ts.URL, "ana@example.com", "Secret123")

	st, body := doMultipart(t, ts.URL, client, map[string]string{
		"breed": "Pug", "zone": "este", "name": "Toby", "age": "21",
	}, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid pet, got %d", st)
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Fields["zone"] == "" || resp.Fields["age"] == "" {
		t.Fatalf("expected zone and age errors, got %#v", resp.Fields)
	}

	st, _ = doMultipart(t, ts.URL, client, map[string]string{
		"breed": "Pug", "zone": "sur", "name": "Toby", "age": "3",
	}, []byte("not an image at all"))
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image photo, got %d", st)
	}
}

func TestHTTP_SwaggerDoc(t *testing.T) {
	ts, _ := newServer(t)

	res, err := http.Get(ts.URL + "/swagger/doc.json")
	if err != nil {
		t.Fatalf("get doc: %v", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 doc.json, got %d", res.StatusCode)
	}
	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("doc.json is not json: %v", err)
	}
	if _, ok := doc.Paths["/api/auth/login"]; !ok {
		t.Fatalf("expected login path in doc")
	}
}

func login(t *testing.T, baseURL, email, password string) string {
	t.Helper()

	st, body := doJSON(t, baseURL, "POST", "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Token == "" {
		t.Fatalf("login: missing token body=%s", body)
	}
	return resp.Token
}

func doJSON(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return send(t, req, token)
}

func doMultipart(t *testing.T, baseURL, token string, fields map[string]string, photo []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if photo != nil {
		fw, err := mw.CreateFormFile("photo", "max.png")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		_, _ = fw.Write(photo)
	}
	_ = mw.Close()

	req, err := http.NewRequest("POST", baseURL+"/api/pets", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return send(t, req, token)
}

func send(t *testing.T, req *http.Request, token string) (int, []byte) {
	t.Helper()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
