// Package githubcsv implements shift.RecordRepository on top of a single CSV
// file versioned in a GitHub repository.
package githubcsv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tranvq/shiftlog/internal/domain/shift"
	"github.com/tranvq/shiftlog/internal/pkg/csvcodec"
	"github.com/tranvq/shiftlog/internal/pkg/github"
)

// RemoteFile is the narrow slice of the GitHub client the store needs.
type RemoteFile interface {
	Fetch(ctx context.Context) (content string, sha string, err error)
	Put(ctx context.Context, content, sha, message string) error
}

type Store struct {
	remote RemoteFile
	now    func() time.Time
}

func NewStore(remote RemoteFile) *Store {
	return &Store{remote: remote, now: time.Now}
}

// ReadAll implements shift.RecordRepository. A missing remote file is an
// empty data set, not an error.
func (s *Store) ReadAll(ctx context.Context) ([]string, []shift.Row, error) {
	content, _, err := s.remote.Fetch(ctx)
	if errors.Is(err, github.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch shift file: %w", err)
	}
	columns, rows, err := csvcodec.Decode(content)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode shift file: %w", err)
	}
	return columns, rows, nil
}

// Append implements shift.RecordRepository. The row is appended as one line
// to the fetched content; a fresh file gets the header first. The write is
// conditional on the fetched sha and a conflict surfaces to the caller.
func (s *Store) Append(ctx context.Context, row shift.Row) error {
	content, sha, err := s.remote.Fetch(ctx)
	if err != nil && !errors.Is(err, github.ErrNotFound) {
		return fmt.Errorf("failed to fetch shift file: %w", err)
	}

	var payload string
	if errors.Is(err, github.ErrNotFound) || content == "" {
		payload, err = csvcodec.Encode(shift.Columns, []shift.Row{row})
		if err != nil {
			return fmt.Errorf("failed to encode shift file: %w", err)
		}
		sha = ""
	} else {
		line, err := csvcodec.EncodeRow(shift.Columns, row)
		if err != nil {
			return fmt.Errorf("failed to encode shift row: %w", err)
		}
		if content[len(content)-1] != '\n' {
			content += "\n"
		}
		payload = content + line
	}

	if err := s.remote.Put(ctx, payload, sha, s.commitMessage("log")); err != nil {
		return fmt.Errorf("failed to write shift file: %w", err)
	}
	return nil
}

// Update implements shift.RecordRepository.
func (s *Store) Update(ctx context.Context, fingerprint, updated shift.Row, preferredIndex *int) (bool, error) {
	return s.mutate(ctx, fingerprint, preferredIndex, "update", func(rows []shift.Row, index int) []shift.Row {
		replacement := make(shift.Row, len(shift.Columns))
		for _, col := range shift.Columns {
			replacement[col] = updated[col]
		}
		rows[index] = replacement
		return rows
	})
}

// Delete implements shift.RecordRepository.
func (s *Store) Delete(ctx context.Context, fingerprint shift.Row, preferredIndex *int) (bool, error) {
	return s.mutate(ctx, fingerprint, preferredIndex, "delete", func(rows []shift.Row, index int) []shift.Row {
		return append(rows[:index], rows[index+1:]...)
	})
}

func (s *Store) mutate(ctx context.Context, fingerprint shift.Row, preferredIndex *int, verb string, apply func([]shift.Row, int) []shift.Row) (bool, error) {
	content, sha, err := s.remote.Fetch(ctx)
	if errors.Is(err, github.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to fetch shift file: %w", err)
	}

	columns, rows, err := csvcodec.Decode(content)
	if err != nil {
		return false, fmt.Errorf("failed to decode shift file: %w", err)
	}

	index, found := locateRow(columns, rows, fingerprint, preferredIndex)
	if !found {
		return false, nil
	}

	rows = apply(rows, index)
	payload, err := csvcodec.Encode(columns, rows)
	if err != nil {
		return false, fmt.Errorf("failed to encode shift file: %w", err)
	}
	if err := s.remote.Put(ctx, payload, sha, s.commitMessage(verb)); err != nil {
		return false, fmt.Errorf("failed to write shift file: %w", err)
	}
	return true, nil
}

// locateRow tries the preferred index first, then scans from the newest row
// backwards so duplicate rows resolve to the most recent one. A match means
// every declared column is equal, with missing values normalized to "".
func locateRow(columns []string, rows []shift.Row, fingerprint shift.Row, preferredIndex *int) (int, bool) {
	matches := func(row shift.Row) bool {
		for _, col := range columns {
			if row[col] != fingerprint[col] {
				return false
			}
		}
		return true
	}

	if preferredIndex != nil && *preferredIndex >= 0 && *preferredIndex < len(rows) {
		if matches(rows[*preferredIndex]) {
			return *preferredIndex, true
		}
	}
	for i := len(rows) - 1; i >= 0; i-- {
		if matches(rows[i]) {
			return i, true
		}
	}
	return 0, false
}

func (s *Store) commitMessage(verb string) string {
	return fmt.Sprintf("chore: %s shift via bot at %s", verb, s.now().UTC().Format(time.RFC3339))
}
