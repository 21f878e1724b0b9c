package editor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShellWords(t *testing.T) {
	cases := map[string][]string{
		"":                       nil,
		"vi":                     {"vi"},
		"  code   --wait ":       {"code", "--wait"},
		`"/opt/My Editor/ed" -n`: {"/opt/My Editor/ed", "-n"},
		`emacs -nw 'a b'`:        {"emacs", "-nw", "a b"},
		`nano a\ b`:              {"nano", "a b"},
		`ed ""`:                  {"ed", ""},
	}
	for in, want := range cases {
		assert.Equal(t, want, splitShellWords(in), "%q", in)
	}
}

func TestManualEditMissingEditor(t *testing.T) {
	err := ManualEdit(filepath.Join(t.TempDir(), "laydown.yaml"), "definitely-not-an-editor-xyz")
	assert.ErrorIs(t, err, ErrEditorNotFound)
}

func TestManualEditRunsCommandWithPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	p := filepath.Join(t.TempDir(), "laydown.yaml")
	require.NoError(t, os.WriteFile(p, []byte("did: []\n"), 0o644))

	// sh -c 'script' name path: the path arrives as $1.
	err := ManualEdit(p, `sh -c 'echo "doing: []" >> "$1"' sh`)
	require.NoError(t, err)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "did: []\ndoing: []\n", string(b))
}

func TestManualEditPropagatesFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	err := ManualEdit(filepath.Join(t.TempDir(), "x"), "false")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEditorNotFound)
}
