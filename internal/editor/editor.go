package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"unicode"
)

var ErrEditorNotFound = errors.New("could not find editor")

// Streams the editor process is attached to. Tests swap these out.
var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// ManualEdit opens path in the given editor command and waits for it to exit.
// The command may carry arguments ("code --wait"); an empty command means vi.
func ManualEdit(path, command string) error {
	args := splitShellWords(command)
	if len(args) == 0 {
		args = []string{"vi"}
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = Stdin
	cmd.Stdout = Stdout
	cmd.Stderr = Stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrEditorNotFound, args[0])
		}
		return fmt.Errorf("editor %s: %w", args[0], err)
	}
	return nil
}

// splitShellWords splits a shell-like command string into argv, handling basic quoting.
// It supports single quotes, double quotes, and backslash escaping (outside single quotes).
func splitShellWords(s string) []string {
	var out []string
	var cur []rune
	inSingle, inDouble, escaped, quoted := false, false, false, false

	flush := func() {
		if len(cur) == 0 && !quoted {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		quoted = false
	}

	for _, r := range s {
		switch {
		case escaped:
			cur = append(cur, r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			quoted = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			quoted = true
		case !inSingle && !inDouble && unicode.IsSpace(r):
			flush()
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return out
}
