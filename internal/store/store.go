// Package store implements the Application Record Store: append-mostly job
// application rows over a tabular backing sheet. All reads are full scans in
// insertion order; the only in-place mutation is the status cell of a row
// found by its composite (candidate, company, jobTitle) key.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/TechBuddyz/Job-Application-Tracker/internal/domain"
	"github.com/TechBuddyz/Job-Application-Tracker/internal/tabular"
)

// ErrNotFound is returned by UpdateStatus when no row matches the composite
// key.
var ErrNotFound = errors.New("application not found")

type Store struct {
	sheet tabular.Sheet
	now   func() time.Time
}

func New(sheet tabular.Sheet) *Store {
	return &Store{sheet: sheet, now: time.Now}
}

// NewWithClock pins the clock used for defaulted dateApplied values.
func NewWithClock(sheet tabular.Sheet, now func() time.Time) *Store {
	return &Store{sheet: sheet, now: now}
}

// Init makes sure the sheet exists with its header row. Safe to call any
// number of times; an already-initialized sheet is left untouched.
func (s *Store) Init(ctx context.Context) error {
	return s.sheet.EnsureHeader(ctx, domain.Header)
}

// Distinct returns the unique non-empty values of one column across all data
// rows, sorted ascending. The header row is never included. An empty sheet
// yields an empty slice.
func (s *Store) Distinct(ctx context.Context, col int) ([]string, error) {
	rows, err := s.dataRows(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := []string{}
	for _, row := range rows {
		v := cell(row, col)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// List returns the valid data rows as records, in insertion order. A
// non-empty candidate restricts the result to exact (case-sensitive)
// matches. Rows with a blank candidate cell are skipped. A row stored with
// an empty status reads back as the default.
func (s *Store) List(ctx context.Context, candidate string) ([]domain.ApplicationRecord, error) {
	rows, err := s.dataRows(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.ApplicationRecord{}
	for _, row := range rows {
		c := cell(row, domain.ColCandidate)
		if c == "" {
			continue
		}
		if candidate != "" && c != candidate {
			continue
		}
		rec := domain.RecordFromRow(row)
		if rec.Status == "" {
			rec.Status = domain.DefaultStatus
		}
		out = append(out, rec)
	}
	return out, nil
}

// Save appends one record to the end of the sheet, filling defaults for the
// omitted fields: empty strings, today's date, DefaultStatus. The sheet is
// initialized first if it does not exist yet.
func (s *Store) Save(ctx context.Context, rec domain.ApplicationRecord) error {
	if err := s.Init(ctx); err != nil {
		return err
	}
	return s.sheet.Append(ctx, rec.WithDefaults(s.now()).Row())
}

// UpdateStatus overwrites the status cell of the first row whose
// (candidate, company, jobTitle) triple matches exactly. The scan stops at
// the first match; later rows with the same key are deliberately left
// alone. Returns ErrNotFound, without mutating anything, when no row
// matches.
func (s *Store) UpdateStatus(ctx context.Context, candidate, company, jobTitle, status string) error {
	rows, err := s.sheet.ReadAll(ctx)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if cell(row, domain.ColCandidate) != candidate ||
			cell(row, domain.ColCompany) != company ||
			cell(row, domain.ColJobTitle) != jobTitle {
			continue
		}
		return s.sheet.UpdateCell(ctx, i, domain.ColStatus, status)
	}
	return fmt.Errorf("%w: %s / %s / %s", ErrNotFound, candidate, company, jobTitle)
}

// dataRows returns every row after the header.
func (s *Store) dataRows(ctx context.Context) ([][]string, error) {
	rows, err := s.sheet.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
