// Package memory implements the rows.Source port over an in-memory grid,
// optionally seeded from a local semicolon-delimited CSV file. It backs
// development setups and tests where no spreadsheet API is reachable.
package memory

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	ports "financas/internal/rows"
)

type Store struct {
	mu   sync.Mutex
	grid [][]any
	err  error
}

var _ ports.Source = (*Store)(nil)

func New(grid [][]any) *Store {
	return &Store{grid: grid}
}

// NewFromFile seeds the store from a semicolon-delimited text file, first
// line headers. A missing or empty file yields an empty grid, not an error.
func NewFromFile(path string) *Store {
	f, err := os.Open(path)
	if err != nil {
		return &Store{}
	}
	defer f.Close()

	var grid [][]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		cells := strings.Split(line, ";")
		row := make([]any, len(cells))
		for i, c := range cells {
			row[i] = strings.TrimSpace(c)
		}
		grid = append(grid, row)
	}
	return &Store{grid: grid}
}

// Fetch returns a copy of the grid so callers can never mutate the seed.
func (s *Store) Fetch(_ context.Context) ([][]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]any, len(s.grid))
	for i, row := range s.grid {
		out[i] = append([]any(nil), row...)
	}
	return out, nil
}

// SetGrid replaces the grid, for tests that simulate dataset changes.
func (s *Store) SetGrid(grid [][]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = grid
}

// SetError makes subsequent fetches fail, for tests that simulate upstream
// outages.
func (s *Store) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
