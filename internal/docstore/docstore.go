// Package docstore provides schema-less document collections addressed by
// identifier. Documents are opaque JSON objects; the resource handlers pass
// them through without interpreting their shape.
package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("docstore: not found")
	ErrInvalidDocument = errors.New("docstore: document must be a non-empty object")
)

// Document is an opaque JSON object. The reserved "id" key is managed by the
// store and overwritten on read.
type Document map[string]any

// Collection is a named set of documents.
type Collection interface {
	// List returns all documents in the collection.
	List(ctx context.Context) ([]Document, error)

	// Get returns the document with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (Document, error)

	// Insert stores a new document and returns its generated id.
	Insert(ctx context.Context, doc Document) (string, error)

	// Update merges the given fields into an existing document, or returns
	// ErrNotFound.
	Update(ctx context.Context, id string, doc Document) error

	// Delete removes the document with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// Store hands out collections by name.
type Store interface {
	Collection(name string) Collection
}
