package store

import (
	"context"
	"errors"
	"testing"
)

type item struct {
	ID   string
	Name string
}

func newItems() *Collection[item] {
	return NewCollection(func(i *item) string { return i.ID })
}

func sameBacking(a, b []item) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

func TestCollection_CreateAppends(t *testing.T) {
	c := newItems()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := c.Create(ctx, &item{ID: id}); err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
	}

	list, _ := c.List(ctx)
	if len(list) != 3 {
		t.Fatalf("expected 3 items, got %d", len(list))
	}
	for i, want := range []string{"a", "b", "c"} {
		if list[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, list[i].ID)
		}
	}
}

func TestCollection_CreateRejectsDuplicateAndEmptyID(t *testing.T) {
	c := newItems()
	ctx := context.Background()
	c.Create(ctx, &item{ID: "a"})

	if err := c.Create(ctx, &item{ID: "a"}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if err := c.Create(ctx, &item{}); !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 item, got %d", c.Len())
	}
}

func TestCollection_UpdateReplacesInPlace(t *testing.T) {
	c := newItems()
	ctx := context.Background()
	c.Seed(item{ID: "a", Name: "one"}, item{ID: "b", Name: "two"})

	if err := c.Update(ctx, &item{ID: "a", Name: "uno"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("expected length 2, got %d", c.Len())
	}
	got, _ := c.GetByID(ctx, "a")
	if got.Name != "uno" {
		t.Errorf("expected uno, got %s", got.Name)
	}
	list, _ := c.List(ctx)
	if list[0].ID != "a" {
		t.Errorf("update must keep position, got %s first", list[0].ID)
	}
}

func TestCollection_UpdateUnknownIsNoop(t *testing.T) {
	c := newItems()
	ctx := context.Background()
	c.Seed(item{ID: "a"})
	before := c.Snapshot()

	if err := c.Update(ctx, &item{ID: "zzz"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !sameBacking(c.Snapshot(), before) {
		t.Error("failed update must not swap the backing slice")
	}
}

func TestCollection_DeleteTwice(t *testing.T) {
	c := newItems()
	ctx := context.Background()
	c.Seed(item{ID: "a"}, item{ID: "b"})

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	snap := c.Snapshot()

	if err := c.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if !sameBacking(c.Snapshot(), snap) {
		t.Error("second delete must leave the collection unchanged")
	}
}

func TestCollection_SnapshotIsNotMutated(t *testing.T) {
	c := newItems()
	ctx := context.Background()
	c.Seed(item{ID: "a", Name: "one"})

	old := c.Snapshot()
	c.Update(ctx, &item{ID: "a", Name: "changed"})
	c.Create(ctx, &item{ID: "b"})

	if old[0].Name != "one" || len(old) != 1 {
		t.Error("previous snapshot was modified by a later mutation")
	}
	if &old[0] == &c.Snapshot()[0] {
		t.Error("expected a new backing slice after mutation")
	}
}

func TestCollection_ReturnedCopiesAreDetached(t *testing.T) {
	c := newItems()
	ctx := context.Background()
	c.Seed(item{ID: "a", Name: "one"})

	got, _ := c.GetByID(ctx, "a")
	got.Name = "mutated"

	again, _ := c.GetByID(ctx, "a")
	if again.Name != "one" {
		t.Errorf("stored record was mutated through a returned pointer")
	}
}

func TestCollection_Find(t *testing.T) {
	c := newItems()
	ctx := context.Background()
	c.Seed(item{ID: "a", Name: "one"}, item{ID: "b", Name: "two"})

	got, err := c.Find(ctx, func(i *item) bool { return i.Name == "two" })
	if err != nil || got.ID != "b" {
		t.Errorf("expected b, got %v (%v)", got, err)
	}
	if _, err := c.Find(ctx, func(i *item) bool { return false }); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCollection_SeedRejectsDuplicates(t *testing.T) {
	c := newItems()
	if err := c.Seed(item{ID: "a"}, item{ID: "a"}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}
