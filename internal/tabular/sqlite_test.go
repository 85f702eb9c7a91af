package tabular

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var testHeader = []string{"Candidate", "Company", "Job Title"}

func openTestSheet(t *testing.T) (*SQLiteSheet, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheet.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestOpenSQLite_CreatesFile(t *testing.T) {
	_, path := openTestSheet(t)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpenSQLite_InvalidPath(t *testing.T) {
	if _, err := OpenSQLite("/nonexistent/dir/sheet.db"); err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestEnsureHeader_Idempotent(t *testing.T) {
	s, path := openTestSheet(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.EnsureHeader(ctx, testHeader); err != nil {
			t.Fatalf("EnsureHeader() iteration %d failed: %v", i, err)
		}
	}

	rows, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 header row, got %d rows", len(rows))
	}
	if !reflect.DeepEqual(rows[0], testHeader) {
		t.Errorf("header = %v, want %v", rows[0], testHeader)
	}

	// Header survives close and reopen without duplication.
	s.Close()
	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()
	if err := s2.EnsureHeader(ctx, testHeader); err != nil {
		t.Fatalf("EnsureHeader() after reopen failed: %v", err)
	}
	rows, err = s2.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() after reopen failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 row after reopen, got %d", len(rows))
	}
}

func TestAppend_PreservesOrder(t *testing.T) {
	s, _ := openTestSheet(t)
	ctx := context.Background()

	if err := s.EnsureHeader(ctx, testHeader); err != nil {
		t.Fatalf("EnsureHeader() failed: %v", err)
	}
	data := [][]string{
		{"Carol", "Initech", "Analyst"},
		{"Alice", "Acme", "Engineer"},
		{"Bob", "Acme", "Engineer"},
	}
	for _, row := range data {
		if err := s.Append(ctx, row); err != nil {
			t.Fatalf("Append(%v) failed: %v", row, err)
		}
	}

	rows, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	for i, want := range data {
		if !reflect.DeepEqual(rows[i+1], want) {
			t.Errorf("row %d = %v, want %v", i+1, rows[i+1], want)
		}
	}
}

func TestUpdateCell(t *testing.T) {
	s, _ := openTestSheet(t)
	ctx := context.Background()

	if err := s.EnsureHeader(ctx, testHeader); err != nil {
		t.Fatalf("EnsureHeader() failed: %v", err)
	}
	if err := s.Append(ctx, []string{"Alice", "Acme", "Engineer"}); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	if err := s.UpdateCell(ctx, 1, 1, "Initech"); err != nil {
		t.Fatalf("UpdateCell() failed: %v", err)
	}

	rows, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	want := []string{"Alice", "Initech", "Engineer"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("row 1 = %v, want %v", rows[1], want)
	}
	if !reflect.DeepEqual(rows[0], testHeader) {
		t.Errorf("header mutated: %v", rows[0])
	}
}

func TestUpdateCell_OutOfRange(t *testing.T) {
	s, _ := openTestSheet(t)
	ctx := context.Background()

	if err := s.EnsureHeader(ctx, testHeader); err != nil {
		t.Fatalf("EnsureHeader() failed: %v", err)
	}
	if err := s.UpdateCell(ctx, 5, 0, "x"); err == nil {
		t.Error("expected error for out-of-range row, got nil")
	}
}

func TestUpdateCell_PadsShortRow(t *testing.T) {
	s, _ := openTestSheet(t)
	ctx := context.Background()

	if err := s.EnsureHeader(ctx, testHeader); err != nil {
		t.Fatalf("EnsureHeader() failed: %v", err)
	}
	if err := s.Append(ctx, []string{"Alice"}); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	if err := s.UpdateCell(ctx, 1, 2, "Engineer"); err != nil {
		t.Fatalf("UpdateCell() failed: %v", err)
	}

	rows, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	want := []string{"Alice", "", "Engineer"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("row 1 = %v, want %v", rows[1], want)
	}
}
