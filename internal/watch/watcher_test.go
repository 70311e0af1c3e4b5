package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/prscrub/internal/scrub"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIsMarkdownFile(t *testing.T) {
	require.True(t, isMarkdownFile("notes.md"))
	require.True(t, isMarkdownFile("NOTES.MD"))
	require.True(t, isMarkdownFile("a/b/changelog.markdown"))
	require.False(t, isMarkdownFile("main.go"))
	require.False(t, isMarkdownFile("md"))
}

func TestNew_RejectsNonDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.md")
	require.NoError(t, os.WriteFile(file, []byte("x\n"), 0o644))

	_, err := New(file, scrub.New(scrub.Options{}), time.Millisecond, discardLogger())
	require.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "missing"), scrub.New(scrub.Options{}), time.Millisecond, discardLogger())
	require.Error(t, err)
}

func TestScrubFile_RewritesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pr.md")
	require.NoError(t, os.WriteFile(path, []byte("cc @bob\n"), 0o644))

	w, err := New(dir, scrub.New(scrub.Options{}), time.Millisecond, discardLogger())
	require.NoError(t, err)
	defer w.watcher.Close()

	w.scrubFile(path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "cc [@bob](https://github.com/bob)\n", string(got))
}

func TestScrubFile_SkipsWriteWhenUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pr.md")
	require.NoError(t, os.WriteFile(path, []byte("nothing to do\n"), 0o644))

	w, err := New(dir, scrub.New(scrub.Options{}), time.Millisecond, discardLogger())
	require.NoError(t, err)
	defer w.watcher.Close()

	before, err := os.Stat(path)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	w.scrubFile(path)
	after, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, before.ModTime(), after.ModTime())
}

func TestRun_ScrubsChangedFile(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, scrub.New(scrub.Options{}), 10*time.Millisecond, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	path := filepath.Join(dir, "pr.md")
	require.NoError(t, os.WriteFile(path, []byte("cc @bob\n"), 0o644))

	require.Eventually(t, func() bool {
		got, err := os.ReadFile(path)
		return err == nil && string(got) == "cc [@bob](https://github.com/bob)\n"
	}, 3*time.Second, 20*time.Millisecond)

	// the write-back fires one more event; the second scrub is a no-op and
	// must not loop
	time.Sleep(100 * time.Millisecond)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "cc [@bob](https://github.com/bob)\n", string(got))

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on context cancel")
	}
}

func TestRun_IgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, scrub.New(scrub.Options{}), 5*time.Millisecond, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("cc @bob\n"), 0o644))

	time.Sleep(100 * time.Millisecond)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "cc @bob\n", string(got))
}
