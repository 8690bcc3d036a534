package docstore

import (
	"context"
	"sort"
	"sync"

	"animedb.org/internal/ids"
)

var _ Store = (*InMemory)(nil)

// InMemory implements Store with in-process concurrency safety. Semantics
// mirror the Postgres store, including merge-on-update.
type InMemory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

func NewInMemory() *InMemory {
	return &InMemory{collections: make(map[string]map[string]Document)}
}

func (s *InMemory) Collection(name string) Collection {
	return &memCollection{store: s, name: name}
}

type memCollection struct {
	store *InMemory
	name  string
}

func (c *memCollection) docs() map[string]Document {
	docs, ok := c.store.collections[c.name]
	if !ok {
		docs = make(map[string]Document)
		c.store.collections[c.name] = docs
	}
	return docs
}

func (c *memCollection) List(ctx context.Context) ([]Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	docs := c.store.collections[c.name]
	out := make([]Document, 0, len(docs))
	for id, doc := range docs {
		out = append(out, copyDocument(id, doc))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i]["id"].(string) < out[j]["id"].(string)
	})
	return out, nil
}

func (c *memCollection) Get(ctx context.Context, id string) (Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	doc, ok := c.store.collections[c.name][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDocument(id, doc), nil
}

func (c *memCollection) Insert(ctx context.Context, doc Document) (string, error) {
	if len(doc) == 0 {
		return "", ErrInvalidDocument
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	id := ids.New()
	delete(doc, "id")
	stored := make(Document, len(doc))
	for k, v := range doc {
		stored[k] = v
	}
	c.docs()[id] = stored
	return id, nil
}

func (c *memCollection) Update(ctx context.Context, id string, doc Document) error {
	if len(doc) == 0 {
		return ErrInvalidDocument
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	existing, ok := c.store.collections[c.name][id]
	if !ok {
		return ErrNotFound
	}
	delete(doc, "id")
	for k, v := range doc {
		existing[k] = v
	}
	return nil
}

func (c *memCollection) Delete(ctx context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs := c.store.collections[c.name]
	if _, ok := docs[id]; !ok {
		return ErrNotFound
	}
	delete(docs, id)
	return nil
}

func copyDocument(id string, doc Document) Document {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	out["id"] = id
	return out
}
