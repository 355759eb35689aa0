package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"taskman/models"
	"taskman/store"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestMemoryTaskLifecycle(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	created, err := m.Create(ctx, models.CreateTask{Title: "a", Description: strPtr("notes")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == 0 || created.Completed {
		t.Fatalf("Create() = %+v, want nonzero id and completed false", created)
	}

	got, err := m.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != created {
		t.Errorf("Get() = %+v, want %+v", got, created)
	}

	updated, err := m.Update(ctx, created.ID, models.UpdateTask{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !updated.Completed || updated.Title != "a" || *updated.Description != "notes" {
		t.Errorf("Update() = %+v, want only completed changed", updated)
	}

	if err := m.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(ctx, created.ID); !errors.Is(err, store.ErrTaskNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrTaskNotFound", err)
	}
}

func TestMemoryUpdateDescriptionPresence(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	created, err := m.Create(ctx, models.CreateTask{Title: "a", Description: strPtr("notes")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Absent description: untouched.
	updated, err := m.Update(ctx, created.ID, models.UpdateTask{Title: strPtr("b")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Description == nil || *updated.Description != "notes" {
		t.Errorf("Update() without description changed it: got %v", updated.Description)
	}

	// Present but null description: cleared.
	updated, err = m.Update(ctx, created.ID, models.UpdateTask{
		Description: models.NullableString{Set: true},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Description != nil {
		t.Errorf("Update() with null description left %q", *updated.Description)
	}

	// Present with a value: replaced.
	updated, err = m.Update(ctx, created.ID, models.UpdateTask{
		Description: models.NullableString{Set: true, Value: strPtr("redone")},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Description == nil || *updated.Description != "redone" {
		t.Errorf("Update() with new description = %v, want redone", updated.Description)
	}
}

func TestMemoryMissingTaskSignals(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	if _, err := m.Get(ctx, 1); !errors.Is(err, store.ErrTaskNotFound) {
		t.Errorf("Get() error = %v, want ErrTaskNotFound", err)
	}
	if _, err := m.Update(ctx, 1, models.UpdateTask{Title: strPtr("b")}); !errors.Is(err, store.ErrTaskNotFound) {
		t.Errorf("Update() error = %v, want ErrTaskNotFound", err)
	}
	if err := m.Delete(ctx, 1); !errors.Is(err, store.ErrTaskNotFound) {
		t.Errorf("Delete() error = %v, want ErrTaskNotFound", err)
	}
}

func TestMemoryListFilter(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	m.Create(ctx, models.CreateTask{Title: "done", Completed: boolPtr(true)})
	m.Create(ctx, models.CreateTask{Title: "open"})

	tests := []struct {
		name      string
		completed *bool
		want      int
	}{
		{name: "All", completed: nil, want: 2},
		{name: "Completed", completed: boolPtr(true), want: 1},
		{name: "Open", completed: boolPtr(false), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := m.List(ctx, tt.completed)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(tasks) != tt.want {
				t.Errorf("List() returned %d tasks, want %d", len(tasks), tt.want)
			}
		})
	}
}

func TestMemoryConcurrentCreatesGetDistinctIDs(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	const n = 50
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := m.Create(ctx, models.CreateTask{Title: "t"})
			if err != nil {
				t.Errorf("Create() error = %v", err)
				return
			}
			ids <- task.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("Duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("Got %d distinct ids, want %d", len(seen), n)
	}
}

func TestMemoryDuplicateUser(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	first, err := m.CreateUser(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if _, err := m.CreateUser(ctx, "alice", "other"); !errors.Is(err, store.ErrUserExists) {
		t.Fatalf("Second CreateUser() error = %v, want ErrUserExists", err)
	}

	got, err := m.UserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("UserByUsername() error = %v", err)
	}
	if got != first {
		t.Errorf("Stored user changed after failed duplicate: %+v, want %+v", got, first)
	}

	if _, err := m.UserByUsername(ctx, "bob"); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("UserByUsername() error = %v, want ErrUserNotFound", err)
	}
}
