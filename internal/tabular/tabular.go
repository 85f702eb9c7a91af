// Package tabular is the storage port for the application sheet: an ordered
// table of string rows whose first row is a fixed header. The sheet preserves
// append order and never deletes or reorders rows; the only in-place mutation
// is overwriting a single cell.
//
// The port assumes a single logical writer. Implementations do not add their
// own locking beyond what the backing medium requires.
package tabular

import (
	"context"
	"errors"
)

// ErrStorage marks failures of the backing medium. Callers can detect the
// "storage unavailable" condition with errors.Is and surface it apart from
// domain errors.
var ErrStorage = errors.New("storage unavailable")

// Sheet is an ordered table of string rows. Row 0 is the header once
// EnsureHeader has run.
type Sheet interface {
	// EnsureHeader creates the table with header as row 0 if it does not
	// exist yet. Idempotent: an existing table is left untouched.
	EnsureHeader(ctx context.Context, header []string) error

	// ReadAll returns every row, header included, in table order.
	ReadAll(ctx context.Context) ([][]string, error)

	// Append adds a row after the current last row.
	Append(ctx context.Context, row []string) error

	// UpdateCell overwrites a single cell. Row and column indexes follow
	// ReadAll positions, so row 0 addresses the header.
	UpdateCell(ctx context.Context, row, col int, value string) error
}
