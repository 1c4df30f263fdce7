package follower

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatch(t *testing.T, path string) (<-chan Config, context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	applied := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c Config) { applied <- c })
	}()
	// Let the watcher register before the test writes anything.
	time.Sleep(200 * time.Millisecond)
	return applied, cancel, done
}

func TestWatch_AppliesValidUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.json")
	require.NoError(t, DefaultConfig().Save(path))

	applied, cancel, done := startWatch(t, path)
	defer cancel()

	next := DefaultConfig()
	next.MaxVal = 100
	require.NoError(t, next.Save(path))

	select {
	case got := <-applied:
		assert.Equal(t, 100, got.MaxVal)
	case <-time.After(5 * time.Second):
		t.Fatal("update never applied")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_InvalidUpdate_NotApplied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.json")
	applied, cancel, _ := startWatch(t, path)
	defer cancel()

	require.NoError(t, os.WriteFile(path, []byte(`{"min_val": 900}`), 0644))
	select {
	case got := <-applied:
		t.Fatalf("invalid update applied: %+v", got)
	case <-time.After(600 * time.Millisecond):
	}

	// The watcher must still be alive for the next, valid write.
	valid := DefaultConfig()
	valid.HoughThreshold = 25
	require.NoError(t, valid.Save(path))

	select {
	case got := <-applied:
		assert.Equal(t, 25, got.HoughThreshold)
	case <-time.After(5 * time.Second):
		t.Fatal("valid update never applied")
	}
}

func TestWatch_MissingDirectory_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "tuning.json")
	err := Watch(context.Background(), path, func(Config) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching")
}
