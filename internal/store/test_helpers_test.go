package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a new file-backed store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedCustomers inserts the rows every read test runs against.
//
//	1 Alice  AB1 192.0.2.123
//	2 Bob    AB2 192.0.2.123/32
//	3 Carol  NULL 192.0.2.120/29
//	4 Dave   ""  192.0.2.0/24
//	5 alan   AB1 198.51.100.7
//	6 NULL   CD9 NULL
func seedCustomers(t *testing.T, s *Store) {
	t.Helper()
	rows := []map[string]any{
		{"name": "Alice", "postcode": "AB1", "ip": "192.0.2.123"},
		{"name": "Bob", "postcode": "AB2", "ip": "192.0.2.123/32"},
		{"name": "Carol", "postcode": nil, "ip": "192.0.2.120/29"},
		{"name": "Dave", "postcode": "", "ip": "192.0.2.0/24"},
		{"name": "alan", "postcode": "AB1", "ip": "198.51.100.7"},
		{"name": nil, "postcode": "CD9", "ip": nil},
	}
	if _, err := s.InsertAll(context.Background(), CustomersTable, rows); err != nil {
		t.Fatalf("InsertAll() failed: %v", err)
	}
}
