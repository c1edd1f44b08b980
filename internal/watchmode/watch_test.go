package watchmode_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cptrans/internal/watchmode"
)

func TestRunInvokesOnChangeAfterDebouncedWrite(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.cp")
	require.NoError(t, os.WriteFile(f, []byte("int x;\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 4)
	go func() {
		_ = watchmode.Run(ctx, []string{f}, 30*time.Millisecond, func(changed []string) {
			changes <- changed
		})
	}()

	// Give the watcher time to register the directory before mutating it.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(f, []byte("int x = 1;\n"), 0o644))

	select {
	case changed := <-changes:
		abs, _ := filepath.Abs(f)
		require.Contains(t, changed, abs)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for onChange")
	}
}

func TestRunStopsWhenContextCanceled(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.cp")
	require.NoError(t, os.WriteFile(f, []byte("int x;\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchmode.Run(ctx, []string{f}, 30*time.Millisecond, func([]string) {})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestRunIgnoresUntrackedFilesInSameDirectory(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.cp")
	other := filepath.Join(dir, "other.cp")
	require.NoError(t, os.WriteFile(f, []byte("int x;\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("int y;\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 4)
	go func() {
		_ = watchmode.Run(ctx, []string{f}, 30*time.Millisecond, func(changed []string) {
			changes <- changed
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("int y = 2;\n"), 0o644))

	select {
	case changed := <-changes:
		t.Fatalf("unexpected onChange for untracked file: %v", changed)
	case <-time.After(300 * time.Millisecond):
	}
}
