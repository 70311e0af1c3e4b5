package commands

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/prscrub/internal/scrub"
)

func TestScrubStream(t *testing.T) {
	scrubber := scrub.New(scrub.Options{RedirectHost: "redirect.example.com"})
	in := strings.NewReader("cc @bob, fixes https://github.com/foo/bar/issues/3\n")
	var out bytes.Buffer

	require.NoError(t, scrubStream(scrubber, in, &out))
	require.Equal(t,
		"cc [@bob](https://github.com/bob), fixes [foo/bar#3](https://redirect.example.com/foo/bar/issues/3)\n",
		out.String())
}

func TestScrubStream_EmptyInput(t *testing.T) {
	scrubber := scrub.New(scrub.Options{})
	var out bytes.Buffer
	require.NoError(t, scrubStream(scrubber, strings.NewReader(""), &out))
	require.Empty(t, out.String())
}

func TestScrubCmd_WriteRequiresPaths(t *testing.T) {
	cmd := &ScrubCmd{Write: true}
	root := &CLI{Config: filepath.Join(t.TempDir(), "missing.yaml")}
	g := &Global{Logger: discardLogger()}

	err := cmd.Run(g, root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--write requires file arguments")
}

func TestScrubCmd_WritesFileInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pr.md")
	require.NoError(t, os.WriteFile(path, []byte("cc @bob\n"), 0o644))

	cmd := &ScrubCmd{Write: true, Paths: []string{path}}
	root := &CLI{Config: filepath.Join(dir, "missing.yaml")}
	g := &Global{Logger: discardLogger()}

	require.NoError(t, cmd.Run(g, root))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "cc [@bob](https://github.com/bob)\n", string(got))
}

func TestScrubCmd_MissingFile(t *testing.T) {
	cmd := &ScrubCmd{Paths: []string{filepath.Join(t.TempDir(), "nope.md")}}
	root := &CLI{Config: filepath.Join(t.TempDir(), "missing.yaml")}
	g := &Global{Logger: discardLogger()}

	require.Error(t, cmd.Run(g, root))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
