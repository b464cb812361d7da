package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestDoJSON_DecodesAndSendsHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer header, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected json content type, got %q", r.Header.Get("Content-Type"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("NewWithBaseURL: %v", err)
	}

	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.DoJSON(context.Background(), http.MethodPost, "echo", Bearer("tok"), map[string]string{"a": "b"}, &out); err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if !out.OK {
		t.Fatalf("expected ok=true")
	}
}

func TestDoJSON_Non2xx_ExtractsMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)
	err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusUnauthorized || he.Message != "Credenciales inválidas" {
		t.Fatalf("unexpected error: %#v", he)
	}
}

func TestDoMultipart_SendsFieldsAndFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.FormValue("name") != "Max" {
			t.Errorf("expected name=Max, got %q", r.FormValue("name"))
		}
		f, hdr, err := r.FormFile("photo")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		if string(b) != "jpegbytes" || hdr.Filename != "max.jpg" {
			t.Errorf("unexpected file %q %q", hdr.Filename, string(b))
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"p1"}`))
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)
	var out struct {
		ID string `json:"id"`
	}
	err := c.DoMultipart(context.Background(), http.MethodPost, "/pets", nil,
		map[string]string{"name": "Max"},
		[]FilePart{{Field: "photo", FileName: "max.jpg", ContentType: "image/jpeg", Content: strings.NewReader("jpegbytes")}},
		&out)
	if err != nil {
		t.Fatalf("DoMultipart: %v", err)
	}
	if out.ID != "p1" {
		t.Fatalf("expected id p1, got %q", out.ID)
	}
}

func TestResolveURL_RelativeWithoutBase(t *testing.T) {
	c := New(0)
	if _, err := c.resolveURL("/x"); err == nil {
		t.Fatalf("expected error for relative path without BaseURL")
	}
	if got, _ := c.resolveURL("https://api.example.com/x"); got != "https://api.example.com/x" {
		t.Fatalf("absolute url should pass through, got %q", got)
	}
}
