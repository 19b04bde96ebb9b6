package store

import (
	"bytes"
	"context"
	"fmt"
	"time"

	sio "github.com/matzehuels/sentree/pkg/io"
	"github.com/matzehuels/sentree/pkg/sentence"
)

// Documents stores annotation documents in a backend as indented JSON.
type Documents struct {
	backend Store
	ttl     time.Duration
}

// NewDocuments wraps backend. Entries written through it expire after ttl;
// zero keeps them forever.
func NewDocuments(backend Store, ttl time.Duration) *Documents {
	return &Documents{backend: backend, ttl: ttl}
}

// Put encodes doc and stores it under key.
func (d *Documents) Put(ctx context.Context, key string, doc sio.Document) error {
	var buf bytes.Buffer
	if err := sio.WriteJSON(doc, &buf); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return d.backend.Set(ctx, key, buf.Bytes(), d.ttl)
}

// PutGraph serializes g and stores it under key.
func (d *Documents) PutGraph(ctx context.Context, key string, g *sentence.Graph) error {
	return d.Put(ctx, key, sio.Serialize(g))
}

// Get returns the document stored under key, or ErrNotFound.
func (d *Documents) Get(ctx context.Context, key string) (sio.Document, error) {
	data, ok, err := d.backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	doc, err := sio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, key, err)
	}
	return doc, nil
}

// GetGraph loads the document under key and rebuilds its graph.
func (d *Documents) GetGraph(ctx context.Context, key string) (*sentence.Graph, error) {
	doc, err := d.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return sio.Deserialize(doc)
}

// Delete removes the document stored under key.
func (d *Documents) Delete(ctx context.Context, key string) error {
	return d.backend.Delete(ctx, key)
}
