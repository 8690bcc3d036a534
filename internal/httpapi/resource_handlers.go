package httpapi

import (
	"errors"
	"net/http"

	"animedb.org/internal/docstore"
)

// Resource handlers are thin passthroughs to the document store: bodies are
// opaque JSON objects and only presence is validated.

func (a *API) listDocuments(col docstore.Collection) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		docs, err := col.List(r.Context())
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		if docs == nil {
			docs = []docstore.Document{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": docs})
	})
}

func (a *API) getDocument(col docstore.Collection) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, err := col.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			handleDocstoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	})
}

func (a *API) insertDocument(col docstore.Collection) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var doc docstore.Document
		if err := decodeJSON(w, r, &doc); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		id, err := col.Insert(r.Context(), doc)
		if err != nil {
			handleDocstoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "created",
			"id":      id,
		})
	})
}

func (a *API) updateDocument(col docstore.Collection) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var doc docstore.Document
		if err := decodeJSON(w, r, &doc); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if err := col.Update(r.Context(), r.PathValue("id"), doc); err != nil {
			handleDocstoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "updated"})
	})
}

func (a *API) deleteDocument(col docstore.Collection) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := col.Delete(r.Context(), r.PathValue("id")); err != nil {
			handleDocstoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "deleted"})
	})
}

func handleDocstoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "document not found")
	case errors.Is(err, docstore.ErrInvalidDocument):
		writeError(w, r, http.StatusBadRequest, "document must be a non-empty object")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
