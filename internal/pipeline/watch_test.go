package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_RendersNewFiles(t *testing.T) {
	p, _ := setup(t, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan Result, 4)
	done := make(chan error, 1)
	go func() {
		done <- p.Watch(ctx, p.Config.InputDir, 50*time.Millisecond, func(r Result) { results <- r })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(p.Config.InputDir, "notes.pdf"), []byte("x"), 0644))
	input := filepath.Join(p.Config.InputDir, "products_live.csv")
	require.NoError(t, os.WriteFile(input, []byte(productsCSV), 0644))

	select {
	case r := <-results:
		require.NoError(t, r.Error)
		assert.Equal(t, input, r.FilePath)
		assert.Equal(t, 2, r.Stats.CardsRendered)
	case <-time.After(5 * time.Second):
		t.Fatal("no render after file was written")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Empty(t, results)
}

func TestWatch_MissingDir(t *testing.T) {
	p, _ := setup(t, "json")
	err := p.Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), 0, nil)
	require.Error(t, err)
}

func TestSettled(t *testing.T) {
	now := time.Now()
	pending := map[string]time.Time{
		"b.csv": now.Add(-2 * time.Second),
		"a.csv": now.Add(-3 * time.Second),
		"c.csv": now,
	}

	ready := settled(pending, time.Second)
	assert.Equal(t, []string{"a.csv", "b.csv"}, ready)
	assert.Len(t, pending, 1)
	assert.Contains(t, pending, "c.csv")
}
