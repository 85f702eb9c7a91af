package tabular

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteSheet keeps the sheet in a single sheet_rows table, one database row
// per sheet row. Cells are stored as a JSON array so the column layout lives
// in one place (the header row) instead of the schema.
type SQLiteSheet struct {
	db *sql.DB
}

// OpenSQLite opens the sheet database at path, creating it if needed.
// Safe to call repeatedly against the same file.
func OpenSQLite(path string) (*SQLiteSheet, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under the single-logical-writer model.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS sheet_rows (
	pos INTEGER PRIMARY KEY AUTOINCREMENT,
	cells TEXT NOT NULL
);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sheet_rows: %w", err)
	}
	return &SQLiteSheet{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteSheet) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteSheet) EnsureHeader(ctx context.Context, header []string) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheet_rows`).Scan(&n); err != nil {
		return fmt.Errorf("%w: count rows: %v", ErrStorage, err)
	}
	if n > 0 {
		return nil
	}
	return s.Append(ctx, header)
}

func (s *SQLiteSheet) ReadAll(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT cells FROM sheet_rows ORDER BY pos ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", ErrStorage, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", ErrStorage, err)
		}
		cells, err := decodeCells(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", ErrStorage, err)
	}
	return out, nil
}

func (s *SQLiteSheet) Append(ctx context.Context, row []string) error {
	raw, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO sheet_rows (cells) VALUES (?)`, string(raw)); err != nil {
		return fmt.Errorf("%w: append row: %v", ErrStorage, err)
	}
	return nil
}

func (s *SQLiteSheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("update cell: negative index (%d, %d)", row, col)
	}
	// pos values can have gaps, so the ReadAll index maps to the row at
	// OFFSET row. Read-modify-write keeps cells a single column.
	var pos int64
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT pos, cells FROM sheet_rows ORDER BY pos ASC LIMIT 1 OFFSET ?`, row,
	).Scan(&pos, &raw)
	if err == sql.ErrNoRows {
		return fmt.Errorf("update cell: row %d out of range", row)
	}
	if err != nil {
		return fmt.Errorf("%w: read row %d: %v", ErrStorage, row, err)
	}

	cells, err := decodeCells(raw)
	if err != nil {
		return err
	}
	for len(cells) <= col {
		cells = append(cells, "")
	}
	cells[col] = value

	enc, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE sheet_rows SET cells = ? WHERE pos = ?`, string(enc), pos); err != nil {
		return fmt.Errorf("%w: update row %d: %v", ErrStorage, row, err)
	}
	return nil
}

func decodeCells(raw string) ([]string, error) {
	var cells []string
	if err := json.Unmarshal([]byte(raw), &cells); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	return cells, nil
}
