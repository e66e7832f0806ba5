package cmd

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/logging"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/store"
)

func reconcileFixture(t *testing.T, version string) (*content.Catalog, *progress.Store) {
	t.Helper()
	c, err := content.New([]content.WordBook{{
		ID: "b1", Name: "Book",
		Units: []content.Unit{{Unit: "Unit 1", Words: []content.WordItem{
			{ID: "b1-u1-w1", Word: "cat", Meaning: "猫"},
		}}},
	}}, nil, nil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	c.Version = version

	p := progress.New(progress.NewMemoryBackend())
	p.RecordAnswer("b1-u1-w1", false, false)
	p.RecordAnswer("old-w9", false, false)
	p.ToggleFavorite("old-w9")
	return c, p
}

func openBlobs(t *testing.T) store.BlobRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "wordiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st.BlobRepo()
}

func TestReconcileUnversionedPrunesEveryRun(t *testing.T) {
	ctx := context.Background()
	c, p := reconcileFixture(t, "")
	blobs := openBlobs(t)

	if got := reconcile(ctx, blobs, p, c, logging.Discard()); got != 2 {
		t.Errorf("removed = %d, want 2", got)
	}
	if got := p.WrongWords(); !slices.Equal(got, []string{"b1-u1-w1"}) {
		t.Errorf("wrong words = %v", got)
	}
	if len(p.Favorites()) != 0 {
		t.Errorf("favorites = %v, want none", p.Favorites())
	}

	// a regenerated words.json without a manifest still gets reconciled
	p.RecordAnswer("old-w10", false, false)
	if got := reconcile(ctx, blobs, p, c, logging.Discard()); got != 1 {
		t.Errorf("second run removed = %d, want 1", got)
	}
}

func TestReconcileVersionedOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	c, p := reconcileFixture(t, "v1.0.0")
	blobs := openBlobs(t)

	if got := reconcile(ctx, blobs, p, c, logging.Discard()); got != 2 {
		t.Fatalf("first run removed = %d, want 2", got)
	}
	stored, ok, err := blobs.Get(ctx, catalogVersionKey)
	if err != nil || !ok || string(stored) != "v1.0.0" {
		t.Fatalf("stored version = %q ok=%v err=%v", stored, ok, err)
	}

	p.RecordAnswer("old-w10", false, false)
	if got := reconcile(ctx, blobs, p, c, logging.Discard()); got != 0 {
		t.Errorf("same version removed = %d, want 0", got)
	}

	c.Version = "v1.1.0"
	if got := reconcile(ctx, blobs, p, c, logging.Discard()); got != 1 {
		t.Errorf("new version removed = %d, want 1", got)
	}
}

func TestOpenProgressFallsBackToMemory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, p := openProgress(context.Background(), filepath.Join(blocker, "wordiz.db"), logging.Discard())
	if st != nil {
		st.Close()
		t.Fatal("expected no store for an unusable path")
	}
	if !p.Degraded() {
		t.Error("progress should be marked degraded")
	}
	p.RecordAnswer("w1", false, false)
	if got := p.WrongWords(); !slices.Equal(got, []string{"w1"}) {
		t.Errorf("in-memory progress not updated: %v", got)
	}
}

func TestOpenProgressUsesStore(t *testing.T) {
	st, p := openProgress(context.Background(), filepath.Join(t.TempDir(), "wordiz.db"), logging.Discard())
	if st == nil {
		t.Fatal("expected an open store")
	}
	defer st.Close()
	if p.Degraded() {
		t.Error("fresh database should not be degraded")
	}
}
