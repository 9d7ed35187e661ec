package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revelaction/coref/markable"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

const dogJSON = `{
	"title": "dog.json",
	"labels": ["animals"],
	"doc_tokens": ["the", "dog", "saw", "it"],
	"markables": [
		{"start": 0, "end": 1, "tokens": ["the", "dog"], "tags": ["DT", "NN"], "entity": "e1"},
		{"start": 3, "end": 3, "tokens": ["it"], "tags": ["PRP"], "entity": "e1"}
	]
}`

func TestReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "dog.json", dogJSON)

	h, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := h.Read(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Tokens) != 4 {
		t.Errorf("expected 4 tokens, got %d", len(doc.Tokens))
	}

	if len(doc.Markables) != 2 {
		t.Fatalf("expected 2 markables, got %d", len(doc.Markables))
	}

	if doc.Markables[1].Entity != "e1" {
		t.Errorf("expected entity e1, got %q", doc.Markables[1].Entity)
	}
}

func TestReadOutOfRange(t *testing.T) {
	dir := t.TempDir()

	h, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := h.Read(0); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestInvalidMarkableRejected(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "bad.json", `{
		"doc_tokens": ["the", "dog"],
		"markables": [{"start": 1, "end": 0, "tokens": ["dog"], "tags": ["NN"]}]
	}`)

	h, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := h.Read(0); err == nil {
		t.Fatalf("expected validation error at load time")
	}
}

func TestListByLabel(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "dog.json", dogJSON)
	writeDoc(t, dir, "other.json", `{"labels": ["news"], "doc_tokens": [], "markables": []}`)

	h, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := h.Preload(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs, err := h.List("anim")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(docs) != 1 || docs[0].Title != "dog.json" {
		t.Fatalf("expected only dog.json, got %v", docs)
	}
}

func TestListByLabelWithoutPreload(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "dog.json", dogJSON)
	writeDoc(t, dir, "other.json", `{"labels": ["news"], "doc_tokens": [], "markables": []}`)

	// a fresh store has only scanned file names; a label filter must
	// still see the labels inside the files
	h, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs, err := h.List("news")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(docs) != 1 || docs[0].Title != "other.json" {
		t.Fatalf("expected only other.json, got %v", docs)
	}
}

func TestWriteThenRead(t *testing.T) {
	dir := t.TempDir()

	h, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := markable.Doc{
		Title:  "new.json",
		Tokens: []string{"a", "cat"},
		Markables: []markable.Markable{
			{Start: 0, End: 1, Tokens: []string{"a", "cat"}, Tags: []string{"DT", "NN"}, Entity: "e9"},
		},
	}

	if err := h.Write(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a fresh store picks the file up
	h2, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := h2.Read(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Markables) != 1 || got.Markables[0].Entity != "e9" {
		t.Fatalf("round trip lost markables: %v", got.Markables)
	}
}
