package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
)

func TestInsert_ReturnsIDs(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id1, err := s.Insert(ctx, CustomersTable, map[string]any{"name": "Alice"})
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	id2, err := s.Insert(ctx, CustomersTable, map[string]any{"name": "Bob"})
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	if id1 != 1 || id2 != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", id1, id2)
	}
}

func TestInsert_StoresNullAndEmptyDistinctly(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	nullID, err := s.Insert(ctx, CustomersTable, map[string]any{"name": "a", "postcode": nil})
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	emptyID, err := s.Insert(ctx, CustomersTable, map[string]any{"name": "b", "postcode": ""})
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	var postcode sql.NullString
	if err := s.db.QueryRow("SELECT postcode FROM customers WHERE id = ?", nullID).Scan(&postcode); err != nil {
		t.Fatal(err)
	}
	if postcode.Valid {
		t.Errorf("postcode for nil = %q, want NULL", postcode.String)
	}

	if err := s.db.QueryRow("SELECT postcode FROM customers WHERE id = ?", emptyID).Scan(&postcode); err != nil {
		t.Fatal(err)
	}
	if !postcode.Valid || postcode.String != "" {
		t.Errorf("postcode for \"\" = %+v, want empty string", postcode)
	}
}

func TestInsert_ExplicitID(t *testing.T) {
	s := createTestStore(t)

	id, err := s.Insert(context.Background(), CustomersTable, map[string]any{"id": 42, "name": "x"})
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
}

func TestInsert_Rejects(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		table string
		row   map[string]any
		want  string
	}{
		{"bad table", "customers; DROP TABLE customers", map[string]any{"name": "x"}, "invalid table name"},
		{"bad column", CustomersTable, map[string]any{"name) VALUES (1); --": "x"}, "invalid column name"},
		{"empty row", CustomersTable, map[string]any{}, "empty row"},
		{"list value", CustomersTable, map[string]any{"name": []string{"a"}}, "cannot store array value"},
		{"unknown column", CustomersTable, map[string]any{"colour": "red"}, "colour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Insert(ctx, tt.table, tt.row)
			if err == nil {
				t.Fatal("Insert() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestInsertAll_RollsBackOnError(t *testing.T) {
	s := createTestStore(t)

	_, err := s.InsertAll(context.Background(), CustomersTable, []map[string]any{
		{"name": "ok"},
		{"name": []int{1}},
	})
	if err == nil {
		t.Fatal("InsertAll() should fail")
	}
	if !strings.Contains(err.Error(), "row 1") {
		t.Errorf("error = %q, want row index", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM customers").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count = %d after rollback, want 0", count)
	}
}
