package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/sqlcond/internal/store"
)

// CustomerRows returns the standard seed rows, a fresh copy each call.
// Inserted in order into an empty table they get ids 1 to 6:
//
//	1 Alice  AB1  192.0.2.123
//	2 Bob    AB2  192.0.2.123/32
//	3 Carol  NULL 192.0.2.120/29
//	4 Dave   ""   192.0.2.0/24
//	5 alan   AB1  198.51.100.7
//	6 NULL   CD9  NULL
func CustomerRows() []map[string]any {
	return []map[string]any{
		{"name": "Alice", "postcode": "AB1", "ip": "192.0.2.123"},
		{"name": "Bob", "postcode": "AB2", "ip": "192.0.2.123/32"},
		{"name": "Carol", "postcode": nil, "ip": "192.0.2.120/29"},
		{"name": "Dave", "postcode": "", "ip": "192.0.2.0/24"},
		{"name": "alan", "postcode": "AB1", "ip": "198.51.100.7"},
		{"name": nil, "postcode": "CD9", "ip": nil},
	}
}

// SeedCustomers inserts CustomerRows into st.
func SeedCustomers(t testing.TB, st *store.Store) {
	t.Helper()
	if _, err := st.InsertAll(context.Background(), store.CustomersTable, CustomerRows()); err != nil {
		t.Fatalf("seed customers: %v", err)
	}
}

// SeededStore opens an in-memory store holding CustomerRows.
// The store is closed when the test ends.
func SeededStore(t testing.TB) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	SeedCustomers(t, st)
	return st
}

// SeededDatabase writes a SQLite file holding CustomerRows into a temp
// directory and returns its path. The file is closed, ready for a command
// to open.
func SeededDatabase(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "customers.db")
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	SeedCustomers(t, st)
	if err := st.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
	return path
}
