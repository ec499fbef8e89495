package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/djtmpls/pkg/watch"
)

func TestMatch(t *testing.T) {
	dir := filepath.FromSlash("/srv/site")

	tests := []struct {
		name     string
		patterns []string
		path     string
		expected bool
	}{
		{name: "no patterns", path: filepath.Join(dir, "x.go"), expected: true},
		{name: "top level", patterns: []string{"**/*.html"}, path: filepath.Join(dir, "index.html"), expected: true},
		{name: "nested", patterns: []string{"**/*.html"}, path: filepath.Join(dir, "a", "b", "c.html"), expected: true},
		{name: "other extension", patterns: []string{"**/*.html"}, path: filepath.Join(dir, "c.txt"), expected: false},
		{name: "relative path", patterns: []string{"templates/*.html"}, path: "templates/a.html", expected: true},
		{name: "second pattern", patterns: []string{"*.txt", "*.djhtml"}, path: filepath.Join(dir, "a.djhtml"), expected: true},
		{name: "outside directory", patterns: []string{"*.html"}, path: filepath.FromSlash("/elsewhere/a.html"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := watch.New(dir, watch.Options{Patterns: tt.patterns}, nil)
			assert.Equal(t, tt.expected, w.Match(tt.path))
		})
	}
}

func TestRunBatchesChanges(t *testing.T) {
	dir := t.TempDir()

	batches := make(chan []string, 4)
	w := watch.New(dir, watch.Options{
		Patterns: []string{"**/*.html"},
		Debounce: 100 * time.Millisecond,
	}, func(_ context.Context, paths []string) {
		batches <- paths
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case err := <-done:
		require.NoError(t, err)
		t.Fatal("watcher stopped before it was ready")
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte("{% if a %}"), 0o644))
	require.NoError(t, os.WriteFile(page, []byte("{% if a and b %}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case got := <-batches:
		assert.Equal(t, []string{page}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no batch delivered")
	}

	select {
	case got := <-batches:
		t.Fatalf("unexpected second batch %v", got)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunRemovalsAndRenames(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte("{% if a %}"), 0o644))

	batches := make(chan []string, 4)
	w := watch.New(dir, watch.Options{
		Patterns: []string{"**/*.html"},
		Debounce: 100 * time.Millisecond,
	}, func(_ context.Context, paths []string) {
		batches <- paths
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case err := <-done:
		require.NoError(t, err)
		t.Fatal("watcher stopped before it was ready")
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	require.NoError(t, os.Remove(page))

	select {
	case got := <-batches:
		t.Fatalf("removal produced batch %v", got)
	case <-time.After(300 * time.Millisecond):
	}

	// saved the way editors do it: write a temp file, then rename it over the page
	tmp := page + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("{% if a and b %}"), 0o644))
	require.NoError(t, os.Rename(tmp, page))

	select {
	case got := <-batches:
		assert.Equal(t, []string{page}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no batch delivered after rename")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunMissingDirectory(t *testing.T) {
	w := watch.New(filepath.Join(t.TempDir(), "missing"), watch.Options{}, func(context.Context, []string) {})

	err := w.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}
