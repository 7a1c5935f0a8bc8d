package concept

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectSource(t *testing.T) {
	tests := []struct {
		input string
		want  SourceType
	}{
		{"https://example.com/product", SourceURL},
		{"http://example.com", SourceURL},
		{"brochure.pdf", SourcePDF},
		{"Brochure.PDF", SourcePDF},
		{"concept.txt", SourceText},
		{"concept", SourceText},
	}
	for _, tt := range tests {
		if got := DetectSource(tt.input); got != tt.want {
			t.Errorf("DetectSource(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTextLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concept.txt")
	const text = "A drink that functions as a meal\nIt contains 400-500 calories and 20-30 grams of protein."
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := (&TextLoader{}).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Text != text {
		t.Errorf("Text = %q, want trimmed source text", c.Text)
	}
	if c.Title != "A drink that functions as a meal" {
		t.Errorf("Title = %q", c.Title)
	}
	if c.WordCount != 16 {
		t.Errorf("WordCount = %d, want 16", c.WordCount)
	}
	if c.Source != "concept.txt" {
		t.Errorf("Source = %q, want base name", c.Source)
	}
}

func TestTextLoaderEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&TextLoader{}).Load(context.Background(), path); err == nil {
		t.Error("empty concept file should error")
	}
}

func TestTextLoaderMissingFile(t *testing.T) {
	if _, err := (&TextLoader{}).Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("missing file should error")
	}
}

func TestTextLoaderRejectsDirectory(t *testing.T) {
	if _, err := (&TextLoader{}).Load(context.Background(), t.TempDir()); err == nil {
		t.Error("directory should error")
	}
}

func TestURLLoader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Meal Drink</title></head><body><article><p>` +
			strings.Repeat("A complete meal in a bottle with added vitamins and protein. ", 10) +
			`</p></article></body></html>`))
	}))
	defer srv.Close()

	c, err := (&URLLoader{}).Load(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(c.Text, "complete meal in a bottle") {
		t.Errorf("extracted text missing article body: %q", c.Text)
	}
	if c.Source != srv.URL {
		t.Errorf("Source = %q, want %q", c.Source, srv.URL)
	}
}

func TestURLLoaderHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := (&URLLoader{}).Load(context.Background(), srv.URL); err == nil {
		t.Error("HTTP 404 should error")
	}
}

func TestNewLoaderSelection(t *testing.T) {
	if _, ok := NewLoader("https://x.test").(*URLLoader); !ok {
		t.Error("URL input should select URLLoader")
	}
	if _, ok := NewLoader("x.pdf").(*PDFLoader); !ok {
		t.Error("PDF input should select PDFLoader")
	}
	if _, ok := NewLoader("x.txt").(*TextLoader); !ok {
		t.Error("text input should select TextLoader")
	}
}
