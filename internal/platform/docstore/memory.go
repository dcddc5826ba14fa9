package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

type memoryEntry struct {
	seq    int64
	doc    Document
	body   []byte
	fields map[string]interface{}
}

type memoryBackend struct {
	mu          sync.RWMutex
	seq         int64
	collections map[string]map[string]*memoryEntry
}

// NewMemoryStore returns a process-local store. Documents are kept as JSON
// copies, so callers never share memory with what is stored.
func NewMemoryStore() *Store {
	return &Store{
		kind:   KindMemory,
		memory: &memoryBackend{collections: make(map[string]map[string]*memoryEntry)},
	}
}

type memoryCollection[T Document] struct {
	b    *memoryBackend
	name string
}

func newMemoryCollection[T Document](b *memoryBackend, name string) *memoryCollection[T] {
	b.mu.Lock()
	if _, ok := b.collections[name]; !ok {
		b.collections[name] = make(map[string]*memoryEntry)
	}
	b.mu.Unlock()
	return &memoryCollection[T]{b: b, name: name}
}

func (c *memoryCollection[T]) Name() string { return c.name }

func encodeEntry(doc Document) (*memoryEntry, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("index document: %w", err)
	}
	return &memoryEntry{doc: doc, body: body, fields: fields}, nil
}

func decodeEntry[T Document](e *memoryEntry) (*T, error) {
	var out T
	if err := json.Unmarshal(e.body, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &out, nil
}

func (c *memoryCollection[T]) Insert(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return apperr.Unavailable("insert "+c.name, err)
	}
	entry, err := encodeEntry(*doc)
	if err != nil {
		return err
	}

	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	id := (*doc).DocumentID()
	if _, exists := c.b.collections[c.name][id]; exists {
		return fmt.Errorf("insert %s: duplicate id %s", c.name, id)
	}
	c.b.seq++
	entry.seq = c.b.seq
	c.b.collections[c.name][id] = entry
	return nil
}

func (c *memoryCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.Unavailable("get "+c.name, err)
	}
	c.b.mu.RLock()
	entry, ok := c.b.collections[c.name][id]
	c.b.mu.RUnlock()
	if !ok {
		return nil, apperr.NotFound(c.name, id)
	}
	return decodeEntry[T](entry)
}

func (c *memoryCollection[T]) Replace(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return apperr.Unavailable("replace "+c.name, err)
	}
	entry, err := encodeEntry(*doc)
	if err != nil {
		return err
	}

	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	id := (*doc).DocumentID()
	current, ok := c.b.collections[c.name][id]
	if !ok {
		return apperr.NotFound(c.name, id)
	}
	entry.seq = current.seq
	c.b.collections[c.name][id] = entry
	return nil
}

func (c *memoryCollection[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return apperr.Unavailable("delete "+c.name, err)
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if _, ok := c.b.collections[c.name][id]; !ok {
		return apperr.NotFound(c.name, id)
	}
	delete(c.b.collections[c.name], id)
	return nil
}

func (c *memoryCollection[T]) Find(ctx context.Context, q Query) ([]*T, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, apperr.Unavailable("find "+c.name, err)
	}

	c.b.mu.RLock()
	var matched []*memoryEntry
	for _, e := range c.b.collections[c.name] {
		if q.Field != "" {
			v, _ := e.fields[q.Field].(string)
			if v != q.Value {
				continue
			}
		}
		matched = append(matched, e)
	}
	c.b.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if q.SortDesc {
			ti, tj := matched[i].doc.CreatedAt(), matched[j].doc.CreatedAt()
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
			return matched[i].seq > matched[j].seq
		}
		return matched[i].seq < matched[j].seq
	})

	items := make([]*T, 0, len(matched))
	for _, e := range matched {
		doc, err := decodeEntry[T](e)
		if err != nil {
			return nil, err
		}
		items = append(items, doc)
	}
	return items, nil
}
