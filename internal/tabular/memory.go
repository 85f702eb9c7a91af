package tabular

import (
	"context"
	"fmt"
)

// MemSheet is an in-memory Sheet. It backs tests and doubles as a throwaway
// store for local experiments. Not safe for concurrent use, which matches
// the single-writer contract of the port.
type MemSheet struct {
	rows [][]string

	// Fail, when set, makes every operation return a wrapped ErrStorage.
	// Tests use it to exercise the storage-unavailable path.
	Fail bool
}

func NewMemSheet() *MemSheet { return &MemSheet{} }

func (m *MemSheet) EnsureHeader(ctx context.Context, header []string) error {
	if m.Fail {
		return fmt.Errorf("%w: sheet offline", ErrStorage)
	}
	if len(m.rows) > 0 {
		return nil
	}
	m.rows = append(m.rows, cloneRow(header))
	return nil
}

func (m *MemSheet) ReadAll(ctx context.Context) ([][]string, error) {
	if m.Fail {
		return nil, fmt.Errorf("%w: sheet offline", ErrStorage)
	}
	out := make([][]string, len(m.rows))
	for i, row := range m.rows {
		out[i] = cloneRow(row)
	}
	return out, nil
}

func (m *MemSheet) Append(ctx context.Context, row []string) error {
	if m.Fail {
		return fmt.Errorf("%w: sheet offline", ErrStorage)
	}
	m.rows = append(m.rows, cloneRow(row))
	return nil
}

func (m *MemSheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	if m.Fail {
		return fmt.Errorf("%w: sheet offline", ErrStorage)
	}
	if row < 0 || row >= len(m.rows) {
		return fmt.Errorf("update cell: row %d out of range", row)
	}
	if col < 0 {
		return fmt.Errorf("update cell: negative column %d", col)
	}
	for len(m.rows[row]) <= col {
		m.rows[row] = append(m.rows[row], "")
	}
	m.rows[row][col] = value
	return nil
}

func cloneRow(row []string) []string {
	return append([]string(nil), row...)
}
