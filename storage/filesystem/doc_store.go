package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/coref/markable"
	"github.com/revelaction/coref/storage"
)

// DocStore serves documents from a directory of JSON files, one document
// per file. The file list is scanned at construction; contents are loaded
// by Preload or lazily by Read.
type DocStore struct {
	docDir string

	// In-memory cache
	docs   []markable.Doc
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store over docDir.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	var docs []markable.Doc
	idx := 0
	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}

		docs = append(docs, markable.Doc{
			Id:    idx,
			Title: file.Name(),
		})
		idx++
	}

	return &DocStore{
		docDir: docDir,
		docs:   docs,
		loaded: make([]bool, len(docs)),
	}, nil
}

// Preload loads every document into memory. cb, if not nil, is called per
// document for progress display.
func (h *DocStore) Preload(cb func(total int, name string)) error {
	for id := range h.docs {
		if cb != nil {
			cb(len(h.docs), h.docs[id].Title)
		}

		if err := h.load(id); err != nil {
			return err
		}
	}

	return nil
}

func (h *DocStore) load(id int) error {
	if h.loaded[id] {
		return nil
	}

	doc, err := ReadDoc(filepath.Join(h.docDir, h.docs[id].Title))
	if err != nil {
		return err
	}

	if err := doc.Validate(); err != nil {
		return err
	}

	// keep Id and Title from the scan
	h.docs[id].Tokens = doc.Tokens
	h.docs[id].Markables = doc.Markables
	h.docs[id].Labels = doc.Labels
	h.loaded[id] = true

	return nil
}

func (h *DocStore) List(labelMatch string) ([]markable.Doc, error) {
	if labelMatch == "" {
		return h.docs, nil
	}

	// labels live inside the JSON files, not in the directory scan
	for id := range h.docs {
		if err := h.load(id); err != nil {
			return nil, err
		}
	}

	var out []markable.Doc
	for _, doc := range h.docs {
		for _, l := range doc.Labels {
			if strings.Contains(l, labelMatch) {
				out = append(out, doc)
				break
			}
		}
	}

	return out, nil
}

func (h *DocStore) Read(id int) (markable.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return markable.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}

	if err := h.load(id); err != nil {
		return markable.Doc{}, err
	}

	return h.docs[id], nil
}

func (h *DocStore) Write(doc markable.Doc) error {
	name := doc.Title
	if name == "" {
		name = fmt.Sprintf("doc-%d.json", doc.Id)
	}
	if filepath.Ext(name) != ".json" {
		name += ".json"
	}

	data, err := json.MarshalIndent(doc, "", "\t")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(h.docDir, name), data, 0644)
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (markable.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return markable.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc markable.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return markable.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}
