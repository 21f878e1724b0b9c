package yamlstore

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/laydown/internal/model"
)

// Migration repairs one known legacy shape of the record file.
type Migration interface {
	// Matches reports whether cause is the decode failure this migration repairs.
	Matches(cause *ParseError) bool
	// Migrate patches raw and decodes the result.
	Migrate(raw []byte) (model.Standup, error)
}

// migrations is closed on purpose: only shapes that really shipped belong here.
var migrations = []Migration{
	missingHistory{},
}

// Migrate finds the migration matching cause and applies it to raw.
func Migrate(raw []byte, cause *ParseError) (model.Standup, error) {
	if cause == nil {
		return model.Standup{}, fmt.Errorf("%w: no decode failure given", ErrUnrecoverableSchema)
	}
	for _, m := range migrations {
		if m.Matches(cause) {
			return m.Migrate(raw)
		}
	}
	return model.Standup{}, fmt.Errorf("%w: %w", ErrUnrecoverableSchema, cause)
}

// missingHistory upgrades files written before undo existed. The patch is
// textual so whatever else the old file contains is left exactly as written.
type missingHistory struct{}

func (missingHistory) Matches(cause *ParseError) bool {
	return cause != nil && cause.Kind == KindMissingField && cause.Field == "history"
}

func (missingHistory) Migrate(raw []byte) (model.Standup, error) {
	patched, err := spliceHistory(raw)
	if err != nil {
		return model.Standup{}, err
	}
	s, err := Decode(patched)
	if err != nil {
		return model.Standup{}, fmt.Errorf("%w: after adding history: %w", ErrUnrecoverableSchema, err)
	}
	return s, nil
}

// spliceHistory inserts an empty history field as the first entry of the
// root mapping: just inside the opening brace of a flow mapping, or on its own
// line above the first key of a block mapping. Everything after the insertion
// point is left as written, including comments and document markers.
func spliceHistory(raw []byte) ([]byte, error) {
	root, err := parseRoot(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnrecoverableSchema, err)
	}
	pos, ok := offsetOf(raw, root.Line, root.Column)
	if !ok {
		return nil, fmt.Errorf("%w: mapping has no position", ErrUnrecoverableSchema)
	}

	var field string
	if root.Style&yaml.FlowStyle != 0 {
		brace := bytes.IndexByte(raw[pos:], '{')
		if brace < 0 {
			return nil, fmt.Errorf("%w: flow mapping has no opening brace", ErrUnrecoverableSchema)
		}
		pos += brace + 1
		field = "history: [], "
	} else {
		field = "history: []\n" + strings.Repeat(" ", root.Column-1)
	}

	out := make([]byte, 0, len(raw)+len(field))
	out = append(out, raw[:pos]...)
	out = append(out, field...)
	return append(out, raw[pos:]...), nil
}

// offsetOf converts a 1-based line and column, as reported by yaml.v3, into a
// byte offset into raw.
func offsetOf(raw []byte, line, col int) (int, bool) {
	if line < 1 || col < 1 {
		return 0, false
	}
	off := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(raw[off:], '\n')
		if i < 0 {
			return 0, false
		}
		off += i + 1
	}
	for c := 1; c < col; c++ {
		if off >= len(raw) || raw[off] == '\n' {
			return 0, false
		}
		_, size := utf8.DecodeRune(raw[off:])
		off += size
	}
	return off, true
}
