package yamlstore

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput means the document holds no record at all.
	ErrEmptyInput = errors.New("codec: empty input")

	// ErrUnrecoverableSchema means a decode failure matched no known migration,
	// or the migration itself could not produce a valid record.
	ErrUnrecoverableSchema = errors.New("migrator: unrecoverable schema")
)

type ParseKind int

const (
	KindSyntax ParseKind = iota
	KindExpectedStruct
	KindMissingField
	KindInvalidValue
)

func (k ParseKind) String() string {
	switch k {
	case KindExpectedStruct:
		return "expected struct"
	case KindMissingField:
		return "missing field"
	case KindInvalidValue:
		return "invalid value"
	}
	return "syntax"
}

// ParseError describes why a document could not be decoded.
type ParseError struct {
	Kind  ParseKind
	Field string // set for KindMissingField and KindInvalidValue
	Line  int    // 1-based, 0 when unknown
	Msg   string
	Err   error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("codec: line %d: %s", e.Line, msg)
	}
	return "codec: " + msg
}

func (e *ParseError) Unwrap() error { return e.Err }
