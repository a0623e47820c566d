package generations

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"gen-1", "gen-2", "gen-3"} {
		if err := repo.Create(ctx, Generation{ID: id, FormID: "form-1", Status: StatusSucceeded, CreatedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repo.Create(ctx, Generation{ID: "other", FormID: "form-2", CreatedAt: base}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.ListByForm(ctx, "form-1", 2, 0)
	if err != nil {
		t.Fatalf("ListByForm: %v", err)
	}
	if len(got) != 2 || got[0].ID != "gen-3" || got[1].ID != "gen-2" {
		t.Fatalf("unexpected order: %+v", got)
	}

	rest, err := repo.ListByForm(ctx, "form-1", 0, 2)
	if err != nil {
		t.Fatalf("ListByForm: %v", err)
	}
	if len(rest) != 1 || rest[0].ID != "gen-1" {
		t.Fatalf("unexpected offset page: %+v", rest)
	}
}

func TestMemoryRepoGetByIDScopedToForm(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	if err := repo.Create(ctx, Generation{ID: "gen-1", FormID: "form-1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.GetByID(ctx, "form-1", "gen-1"); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if _, err := repo.GetByID(ctx, "form-2", "gen-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound across forms, got %v", err)
	}
}

func TestMemoryRepoHonorsCancelledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.Create(ctx, Generation{ID: "gen-1", FormID: "form-1"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMemoryRepoDeleteByForm(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	for _, gen := range []Generation{
		{ID: "gen-1", FormID: "form-1"},
		{ID: "gen-2", FormID: "form-1"},
		{ID: "gen-3", FormID: "form-2"},
	} {
		if err := repo.Create(ctx, gen); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	n, err := repo.DeleteByForm(ctx, "form-1")
	if err != nil || n != 2 {
		t.Fatalf("DeleteByForm = %d, %v; want 2, nil", n, err)
	}
	if _, err := repo.GetByID(ctx, "form-1", "gen-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted generation gone, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "form-2", "gen-3"); err != nil {
		t.Fatalf("other form must keep its generations: %v", err)
	}
}
