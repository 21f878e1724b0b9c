package yamlstore

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/laydown/internal/model"
)

// YAML-backed storage. Single file, human-editable, rewritten whole on every save.
// No locking; concurrent invocations are last-writer-wins.

// Store owns the record file at a fixed path.
type Store struct {
	path string
}

// New binds a Store to path. The file need not exist yet.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the record, initializing, repairing, or upgrading the file as needed.
func (s *Store) Load() (model.Standup, error) {
	b, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return model.Standup{}, fmt.Errorf("yamlstore: read %s: %w", s.path, err)
	}
	logger := log.WithField("path", s.path)

	st, err := Decode(b)
	if err == nil {
		logger.WithField("items", st.Len()).Debug("loaded standup")
		return st, nil
	}

	if errors.Is(err, ErrEmptyInput) {
		logger.Debug("no standup yet, initializing")
		st = model.New()
		if err := s.Save(st); err != nil {
			return model.Standup{}, err
		}
		return st, nil
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		return model.Standup{}, err
	}
	if perr.Kind == KindExpectedStruct {
		logger.WithError(perr).Warn("file holds no standup, starting fresh")
		return model.New(), nil
	}

	// Migrate wraps ErrUnrecoverableSchema around cause when nothing matches.
	st, err = Migrate(b, perr)
	if err != nil {
		return model.Standup{}, fmt.Errorf("yamlstore: %s: %w", s.path, err)
	}
	logger.Info("upgraded standup file to current format")
	if err := s.Save(st); err != nil {
		return model.Standup{}, err
	}
	return st, nil
}

// Save overwrites the file with the encoding of st.
func (s *Store) Save(st model.Standup) error {
	b, err := Encode(st)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("yamlstore: write %s: %w", s.path, err)
	}
	log.WithField("path", s.path).Debug("saved standup")
	return nil
}

// Clear empties the standup, leaving a well-formed empty record on disk.
func (s *Store) Clear() error {
	return s.Save(model.New())
}

// AppendItem adds item under c and persists the result.
func (s *Store) AppendItem(st *model.Standup, c model.Category, item string) error {
	if err := st.Add(c, item); err != nil {
		return err
	}
	return s.Save(*st)
}

// Undo reverts the most recent append and persists the result. It reports
// false, without touching the file, when the history is empty.
func (s *Store) Undo(st *model.Standup) (bool, error) {
	entry, ok := st.Undo()
	if !ok {
		return false, nil
	}
	if err := s.Save(*st); err != nil {
		return false, err
	}
	log.WithFields(log.Fields{"category": entry.Category, "item": entry.Item}).Debug("undid append")
	return true, nil
}
