// Package tests provides reusable contract suites that every adapter
// implementation must pass.
package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/ports"
)

// RunStateStoreContract exercises the StateStore behavior every
// implementation (memory, file, redis) must share.
func RunStateStoreContract(t *testing.T, store ports.StateStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		if !errors.Is(err, domain.ErrNoSavedState) {
			t.Fatalf("expected ErrNoSavedState, got %v", err)
		}
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		rec := &domain.ExpressionRecord{
			ExpressionID: "happy",
			Source:       domain.SourceRemote,
			AppliedAt:    time.Now().UTC().Truncate(time.Second),
		}
		if err := store.Save(ctx, "face", rec); err != nil {
			t.Fatalf("save: %v", err)
		}

		got, err := store.Load(ctx, "face")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got.ExpressionID != "happy" || got.Source != domain.SourceRemote {
			t.Fatalf("loaded record mismatch: %+v", got)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		first := &domain.ExpressionRecord{ExpressionID: "happy"}
		second := &domain.ExpressionRecord{ExpressionID: "sad"}
		if err := store.Save(ctx, "face", first); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := store.Save(ctx, "face", second); err != nil {
			t.Fatalf("save: %v", err)
		}

		got, err := store.Load(ctx, "face")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got.ExpressionID != "sad" {
			t.Fatalf("expected overwrite, got %q", got.ExpressionID)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		rec := &domain.ExpressionRecord{ExpressionID: "happy"}
		if err := store.Save(ctx, "gone", rec); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := store.Delete(ctx, "gone"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := store.Load(ctx, "gone"); !errors.Is(err, domain.ErrNoSavedState) {
			t.Fatalf("expected ErrNoSavedState after delete, got %v", err)
		}
	})

	t.Run("DeleteMissingIsNoop", func(t *testing.T) {
		if err := store.Delete(ctx, "never-existed"); err != nil {
			t.Fatalf("delete missing: %v", err)
		}
	})
}

// RunPresetSourceContract exercises the PresetSource behavior shared by
// the registry and the file catalog loader.
func RunPresetSourceContract(t *testing.T, source ports.PresetSource, wantIDs []string) {
	t.Helper()

	t.Run("LookupUnknown", func(t *testing.T) {
		_, err := source.Lookup("no-such-expression")
		if !errors.Is(err, domain.ErrPresetNotFound) {
			t.Fatalf("expected ErrPresetNotFound, got %v", err)
		}
	})

	t.Run("ListSorted", func(t *testing.T) {
		list := source.List()
		if len(list) != len(wantIDs) {
			t.Fatalf("expected %d presets, got %d", len(wantIDs), len(list))
		}
		for i, id := range wantIDs {
			if list[i].ID != id {
				t.Fatalf("preset %d: expected %q, got %q", i, id, list[i].ID)
			}
		}
	})

	t.Run("LookupReturnsCopies", func(t *testing.T) {
		if len(wantIDs) == 0 {
			t.Skip("no presets to check")
		}
		id := wantIDs[0]
		a, err := source.Lookup(id)
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		for k := range a.Base {
			delete(a.Base, k)
		}
		b, err := source.Lookup(id)
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if len(b.Base) == 0 {
			t.Fatal("mutating a looked-up preset leaked into the source")
		}
	})
}
