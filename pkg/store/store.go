// Package store persists arranged layouts for later retrieval.
//
// This package defines the storage interface for layout documents, with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production API deployments
//
// # Architecture
//
// A Document is the durable record of one arrange run: the positioned scene,
// the engine's report, and the strategy that produced it. Documents are
// immutable once stored; a re-arrange creates a new document.
//
// # Usage
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "shapecanvas")
//
//	doc := store.NewDocument(positioned, result, "grid")
//	if err := st.Put(ctx, doc); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ufmtooling/shapecanvas/pkg/errors"
	"github.com/ufmtooling/shapecanvas/pkg/layout"
	"github.com/ufmtooling/shapecanvas/pkg/scene"
)

// DefaultListLimit caps List results when the caller passes no limit.
const DefaultListLimit = 50

// Document is the durable record of one arrange run.
type Document struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name,omitempty" bson:"name,omitempty"`
	Strategy  string        `json:"strategy" bson:"strategy"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Scene     *scene.Scene  `json:"scene" bson:"scene"`
	Result    layout.Result `json:"result" bson:"result"`
}

// NewDocument creates a document for a positioned scene with a fresh identifier.
func NewDocument(positioned *scene.Scene, result layout.Result, strategy string) *Document {
	name := ""
	if positioned != nil {
		name = positioned.Name
	}
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Strategy:  strategy,
		CreatedAt: time.Now().UTC(),
		Scene:     positioned,
		Result:    result,
	}
}

// Store is the interface for layout document storage backends.
type Store interface {
	// Get retrieves a document by ID.
	// Returns an error with code ErrCodeLayoutNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Document, error)

	// Put stores a document. Storing an existing ID overwrites it.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns up to limit documents, newest first.
	// A non-positive limit uses DefaultListLimit.
	List(ctx context.Context, limit int) ([]*Document, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// ErrNotFound builds the standard not-found error for a document ID.
func ErrNotFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
}

// =============================================================================
// Memory Store
// =============================================================================

// MemoryStore is an in-memory Store for development and testing.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

// Get retrieves a document by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound(id)
	}
	return doc, nil
}

// Put stores a document.
func (s *MemoryStore) Put(_ context.Context, doc *Document) error {
	if doc == nil || doc.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "document must have an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

// List returns up to limit documents, newest first.
func (s *MemoryStore) List(_ context.Context, limit int) ([]*Document, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	docs := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	s.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close(context.Context) error { return nil }
