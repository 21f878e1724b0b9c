package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/laydown/internal/model"
)

const (
	dateLayout = "2006-01-02"

	overwriteQuestion = "An archive already exists for today. Would you like to overwrite it? (y/n)"
	retryQuestion     = "Type 'y' for yes or 'n' for no."
)

// Prompter asks the user a question and returns the raw answer.
type Prompter interface {
	Prompt(question string) (string, error)
}

// Clearer resets the live standup once it has been archived.
type Clearer interface {
	Clear() error
}

// Archiver writes dated plain-text snapshots of the standup into Dir.
type Archiver struct {
	Dir    string
	Store  Clearer
	Prompt Prompter
}

// PathFor returns the archive file for the given day.
func (a *Archiver) PathFor(day time.Time) string {
	return filepath.Join(a.Dir, day.Format(dateLayout)+".txt")
}

// Archive snapshots st under today's date and clears the store. When today's
// file already exists it only proceeds on an explicit "y"; "n" leaves
// everything untouched and reports false.
func (a *Archiver) Archive(st model.Standup, today time.Time) (bool, error) {
	path := a.PathFor(today)

	_, err := os.Stat(path)
	switch {
	case err == nil:
		ok, err := a.confirmOverwrite()
		if err != nil || !ok {
			return false, err
		}
	case !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("archive: stat %s: %w", path, err)
	}

	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return false, fmt.Errorf("archive: mkdir %s: %w", a.Dir, err)
	}
	if err := os.WriteFile(path, []byte(st.String()), 0o644); err != nil {
		return false, fmt.Errorf("archive: write %s: %w", path, err)
	}
	log.WithFields(log.Fields{"path": path, "items": st.Len()}).Info("archived standup")

	if err := a.Store.Clear(); err != nil {
		return true, fmt.Errorf("archive: written to %s but clearing failed: %w", path, err)
	}
	return true, nil
}

func (a *Archiver) confirmOverwrite() (bool, error) {
	if a.Prompt == nil {
		return false, errors.New("archive: today's archive exists and no prompt is available")
	}
	q := overwriteQuestion
	for {
		answer, err := a.Prompt.Prompt(q)
		if err != nil {
			return false, fmt.Errorf("archive: confirm overwrite: %w", err)
		}
		switch strings.TrimSpace(answer) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		q = retryQuestion
	}
}
