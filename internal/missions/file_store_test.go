package missions

import (
	"context"
	"testing"

	"github.com/toptiermen/platform/internal/model"
)

func TestFileStoreCreateAndList(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	created, err := store.Create(ctx, model.Mission{UserID: 7, Title: "Cold shower", XPReward: 10})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 {
		t.Error("expected an assigned id")
	}
	if created.FrequencyType != model.FrequencyDaily {
		t.Errorf("frequency = %q, want default daily", created.FrequencyType)
	}

	list, err := store.List(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "Cold shower" {
		t.Fatalf("list = %+v, want the created mission", list)
	}

	// Other users see nothing.
	other, err := store.List(ctx, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("user 8 list = %+v, want empty", other)
	}
}

func TestFileStorePersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	created, err := store.Create(ctx, model.Mission{UserID: 1, Title: "Read 10 pages", XPReward: 15})
	if err != nil {
		t.Fatal(err)
	}

	reloaded, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	list, err := reloaded.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("reloaded list = %+v, want mission %d", list, created.ID)
	}

	// Ids keep advancing after a reload instead of colliding.
	second, err := reloaded.Create(ctx, model.Mission{UserID: 1, Title: "Train", XPReward: 20})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID <= created.ID {
		t.Errorf("second id = %d, want > %d", second.ID, created.ID)
	}
}

func TestFileStoreToggle(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	m, err := store.Create(ctx, model.Mission{UserID: 3, Title: "Meditate", XPReward: 10})
	if err != nil {
		t.Fatal(err)
	}

	res, err := store.Toggle(ctx, 3, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Completed || res.XPEarned != 10 {
		t.Errorf("first toggle: completed=%v xp=%d, want true/10", res.Completed, res.XPEarned)
	}

	res, err = store.Toggle(ctx, 3, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Completed || res.XPEarned != -10 {
		t.Errorf("second toggle: completed=%v xp=%d, want false/-10", res.Completed, res.XPEarned)
	}

	if _, err := store.Toggle(ctx, 3, 999); err != ErrNotFound {
		t.Errorf("toggle unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	m, err := store.Create(ctx, model.Mission{UserID: 2, Title: "Stretch"})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, 2, m.ID); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, 2, m.ID); err != ErrNotFound {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}
