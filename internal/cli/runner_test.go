package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t      *testing.T
	dir    string
	now    time.Time
	stdin  string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, k := range []string{"LAYDOWN_CONFIG_DIR", "LAYDOWN_ENV", "LAYDOWN_ARCHIVE_DIR", "LAYDOWN_EDITOR", "LAYDOWN_THEME", "LAYDOWN_DEBUG", "VISUAL", "EDITOR"} {
		t.Setenv(k, "")
	}
	t.Setenv("NO_COLOR", "1")
	return &harness{t: t, dir: t.TempDir(), now: time.Date(2024, 1, 1, 17, 0, 0, 0, time.Local)}
}

func (h *harness) run(args ...string) int {
	h.t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()
	full := append([]string{"--config-dir", h.dir}, args...)
	return Run(full, Options{
		Stdin:  strings.NewReader(h.stdin),
		Stdout: &h.stdout,
		Stderr: &h.stderr,
		Now:    func() time.Time { return h.now },
	})
}

func (h *harness) show() string {
	h.t.Helper()
	require.Equal(h.t, 0, h.run("show", "--format", "plain"), h.stderr.String())
	return h.stdout.String()
}

func TestAddAndShow(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("did", "shipped", "x"), h.stderr.String())
	assert.Contains(t, h.stdout.String(), "added to DID")
	require.Equal(t, 0, h.run("bl", "waiting on review"))
	require.Equal(t, 0, h.run("sb", "coffee"))
	require.Equal(t, 0, h.run("do", "docs"))

	want := "DID:\n- shipped x\n\nDOING:\n- docs\n\nBLOCKERS:\n- waiting on review\n\nSIDEBARS:\n- coffee\n"
	assert.Equal(t, want, h.show())

	require.Equal(t, 0, h.run())
	assert.Equal(t, want, h.stdout.String())

	b, err := os.ReadFile(filepath.Join(h.dir, "laydown.yaml"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "# Do not rename or delete lists."))
}

func TestShowFormats(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("did", "shipped x"))

	require.Equal(t, 0, h.run("show", "--format", "panel"))
	assert.Contains(t, h.stdout.String(), "DID (1)")

	require.Equal(t, 0, h.run("show", "--format", "markdown"))
	assert.Contains(t, h.stdout.String(), "shipped")

	assert.Equal(t, 2, h.run("show", "--format", "html"))
}

func TestUndo(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("did", "a"))
	before := h.show()
	require.Equal(t, 0, h.run("doing", "b"))

	require.Equal(t, 0, h.run("undo"))
	assert.Contains(t, h.stdout.String(), `removed "b" from DOING`)
	assert.Equal(t, before, h.show())

	require.Equal(t, 0, h.run("undo"))
	require.Equal(t, 0, h.run("undo"))
	assert.Empty(t, h.stdout.String())
	assert.Empty(t, h.stderr.String())
}

func TestClear(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("did", "a"))
	require.Equal(t, 0, h.run("clear"))
	assert.Equal(t, "DID:\n\nDOING:\n\nBLOCKERS:\n\nSIDEBARS:\n", h.show())
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 2, h.run("dance"))
	assert.Contains(t, h.stderr.String(), `unknown command "dance"`)
	assert.Contains(t, h.stderr.String(), "laydown help")

	assert.Equal(t, 2, h.run("did"))
	assert.Equal(t, 2, h.run("did", "   "))
	assert.Equal(t, 2, h.run("undo", "extra"))
	assert.Equal(t, 2, h.run("--bogus"))
	assert.Equal(t, 2, h.run("--env", "staging", "show"))

	assert.Equal(t, 0, h.run("help"))
	assert.Contains(t, h.stdout.String(), "di, did")
}

func TestTestEnvUsesSeparateFile(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("--env", "test", "did", "only in test"))

	_, err := os.Stat(filepath.Join(h.dir, "test_laydown.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, h.show(), "only in test")
}

func TestCorruptFileFailsLoudly(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "laydown.yaml"), []byte("did: [\n"), 0o644))

	assert.Equal(t, 1, h.run("did", "x"))
	assert.Contains(t, h.stderr.String(), "codec:")
}

func TestLegacyFileIsUpgraded(t *testing.T) {
	h := newHarness(t)
	legacy := "did:\n  - old work\ndoing: []\nblockers: []\nsidebars: []\n"
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "laydown.yaml"), []byte(legacy), 0o644))

	require.Equal(t, 0, h.run("doing", "new work"))
	assert.Contains(t, h.stderr.String(), "upgraded standup file to current format")
	assert.Equal(t, "DID:\n- old work\n\nDOING:\n- new work\n\nBLOCKERS:\n\nSIDEBARS:\n", h.show())

	require.Equal(t, 0, h.run("undo"))
	require.Equal(t, 0, h.run("undo"))
	assert.Contains(t, h.show(), "- old work")
}

func TestArchive(t *testing.T) {
	h := newHarness(t)
	archived := filepath.Join(h.dir, "archive", "2024-01-01.txt")

	require.Equal(t, 0, h.run("did", "shipped x"))
	require.Equal(t, 0, h.run("archive"), h.stderr.String())
	assert.Contains(t, h.stdout.String(), "archived to "+archived)
	b, err := os.ReadFile(archived)
	require.NoError(t, err)
	assert.Contains(t, string(b), "DID:\n- shipped x\n")
	assert.NotContains(t, h.show(), "shipped x")

	require.Equal(t, 0, h.run("did", "second"))
	h.stdin = "n\n"
	require.Equal(t, 0, h.run("archive"))
	assert.Contains(t, h.stdout.String(), "An archive already exists for today")
	b, err = os.ReadFile(archived)
	require.NoError(t, err)
	assert.Contains(t, string(b), "shipped x")
	assert.Contains(t, h.show(), "second")

	h.stdin = "maybe\ny\n"
	require.Equal(t, 0, h.run("archive"))
	assert.Contains(t, h.stdout.String(), "Type 'y' for yes or 'n' for no.")
	b, err = os.ReadFile(archived)
	require.NoError(t, err)
	assert.Contains(t, string(b), "- second")
	assert.NotContains(t, h.show(), "second")

	h.stdin = ""
	require.Equal(t, 0, h.run("did", "third"))
	assert.Equal(t, 1, h.run("archive"))
	assert.Contains(t, h.show(), "third")
}

func TestEdit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	h := newHarness(t)

	require.Equal(t, 0, h.run("edit", "true"), h.stderr.String())
	_, err := os.Stat(filepath.Join(h.dir, "laydown.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1, h.run("edit", `sh -c 'echo "did: [" >> "$1"' sh`))
	assert.Contains(t, h.stderr.String(), "not a valid standup")

	assert.Equal(t, 1, h.run("edit", "no-such-editor-xyz"))
	assert.Contains(t, h.stderr.String(), "could not find editor")
}
