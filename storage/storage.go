package storage

import (
	"github.com/revelaction/coref/markable"
)

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label
	// containing the string are returned. Content (tokens, markables) is
	// not loaded.
	List(labelMatch string) ([]markable.Doc, error)

	// Read returns a full document by ID.
	Read(id int) (markable.Doc, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document with its markables to storage
	Write(doc markable.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(total int, name string)) error
}
