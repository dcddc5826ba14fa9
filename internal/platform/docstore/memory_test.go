package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

type testDoc struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner_id,omitempty"`
	Title       string    `json:"title"`
	Tags        []string  `json:"tags"`
	CreatedDate time.Time `json:"created_date"`
}

func (d testDoc) DocumentID() string   { return d.ID }
func (d testDoc) CreatedAt() time.Time { return d.CreatedDate }

func openTestCollection(t *testing.T) Collection[testDoc] {
	t.Helper()
	coll, err := Open[testDoc](context.Background(), NewMemoryStore(), "test_docs", "owner_id")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return coll
}

func TestMemory_InsertGet(t *testing.T) {
	coll := openTestCollection(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	doc := &testDoc{ID: "a", Title: "first", Tags: []string{"x"}, CreatedDate: now}
	if err := coll.Insert(ctx, doc); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	got, err := coll.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Title != "first" || len(got.Tags) != 1 || !got.CreatedDate.Equal(now) {
		t.Errorf("unexpected document: %+v", got)
	}
}

func TestMemory_StoresCopies(t *testing.T) {
	coll := openTestCollection(t)
	ctx := context.Background()

	doc := &testDoc{ID: "a", Title: "first", Tags: []string{"x"}}
	if err := coll.Insert(ctx, doc); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	doc.Title = "mutated"
	doc.Tags[0] = "y"

	got, _ := coll.Get(ctx, "a")
	if got.Title != "first" || got.Tags[0] != "x" {
		t.Errorf("stored document changed with caller's copy: %+v", got)
	}

	got.Title = "changed again"
	again, _ := coll.Get(ctx, "a")
	if again.Title != "first" {
		t.Errorf("stored document changed with returned copy: %+v", again)
	}
}

func TestMemory_InsertDuplicate(t *testing.T) {
	coll := openTestCollection(t)
	ctx := context.Background()

	if err := coll.Insert(ctx, &testDoc{ID: "a"}); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if err := coll.Insert(ctx, &testDoc{ID: "a"}); err == nil {
		t.Error("expected error for duplicate id")
	}
}

func TestMemory_NotFound(t *testing.T) {
	coll := openTestCollection(t)
	ctx := context.Background()

	if _, err := coll.Get(ctx, "missing"); !apperr.IsNotFound(err) {
		t.Errorf("Get: expected not found, got %v", err)
	}
	if err := coll.Replace(ctx, &testDoc{ID: "missing"}); !apperr.IsNotFound(err) {
		t.Errorf("Replace: expected not found, got %v", err)
	}
	if err := coll.Delete(ctx, "missing"); !apperr.IsNotFound(err) {
		t.Errorf("Delete: expected not found, got %v", err)
	}
}

func TestMemory_ReplaceKeepsInsertionOrder(t *testing.T) {
	coll := openTestCollection(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := coll.Insert(ctx, &testDoc{ID: id}); err != nil {
			t.Fatalf("Insert(%s) error: %v", id, err)
		}
	}
	if err := coll.Replace(ctx, &testDoc{ID: "a", Title: "updated"}); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	items, err := coll.Find(ctx, Query{})
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != "a" || items[0].Title != "updated" || items[1].ID != "b" || items[2].ID != "c" {
		t.Errorf("unexpected order: %s %s %s", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestMemory_Delete(t *testing.T) {
	coll := openTestCollection(t)
	ctx := context.Background()

	_ = coll.Insert(ctx, &testDoc{ID: "a"})
	if err := coll.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := coll.Get(ctx, "a"); !apperr.IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestMemory_FindFilterAndSort(t *testing.T) {
	coll := openTestCollection(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	docs := []testDoc{
		{ID: "1", Owner: "p1", CreatedDate: base},
		{ID: "2", Owner: "p2", CreatedDate: base.Add(time.Hour)},
		{ID: "3", Owner: "p1", CreatedDate: base.Add(2 * time.Hour)},
		{ID: "4", Owner: "p1", CreatedDate: base.Add(2 * time.Hour)},
	}
	for i := range docs {
		if err := coll.Insert(ctx, &docs[i]); err != nil {
			t.Fatalf("Insert() error: %v", err)
		}
	}

	items, err := coll.Find(ctx, Query{Field: "owner_id", Value: "p1", SortDesc: true})
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	want := []string{"4", "3", "1"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d]: expected %s, got %s", i, id, items[i].ID)
		}
	}
}

func TestMemory_FindEmpty(t *testing.T) {
	coll := openTestCollection(t)

	items, err := coll.Find(context.Background(), Query{Field: "owner_id", Value: "nobody"})
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", items)
	}
}

func TestMemory_FindRejectsBadField(t *testing.T) {
	coll := openTestCollection(t)

	if _, err := coll.Find(context.Background(), Query{Field: "owner'; DROP", Value: "x"}); err == nil {
		t.Error("expected error for invalid field name")
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	coll := openTestCollection(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := coll.Insert(ctx, &testDoc{ID: "a"})
	if !apperr.IsUnavailable(err) {
		t.Errorf("expected unavailable error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped context.Canceled, got %v", err)
	}
}

func TestMemory_CollectionsAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a, _ := Open[testDoc](ctx, store, "alpha")
	b, _ := Open[testDoc](ctx, store, "beta")

	_ = a.Insert(ctx, &testDoc{ID: "x"})
	if _, err := b.Get(ctx, "x"); !apperr.IsNotFound(err) {
		t.Errorf("expected not found in other collection, got %v", err)
	}

	again, _ := Open[testDoc](ctx, store, "alpha")
	if _, err := again.Get(ctx, "x"); err != nil {
		t.Errorf("reopened collection lost data: %v", err)
	}
}
