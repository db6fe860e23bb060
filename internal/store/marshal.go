package store

import (
	"fmt"

	"github.com/roach88/sqlcond/internal/ir"
)

// marshalArgs converts bind values to canonical JSON TEXT for the query log.
// Uses RFC 8785 canonical JSON so identical conditions log identical text.
func marshalArgs(args []any) (string, error) {
	if args == nil {
		args = []any{}
	}
	data, err := ir.MarshalCanonical(args)
	if err != nil {
		return "", fmt.Errorf("marshal args: %w", err)
	}
	return string(data), nil
}

// unmarshalArgs converts logged JSON TEXT back to bind values.
// Opaque values come back as their JSON form (e.g. time.Time as a string).
func unmarshalArgs(data string) ([]any, error) {
	v, err := ir.UnmarshalValue([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal args: %w", err)
	}
	arr, ok := v.(ir.Array)
	if !ok {
		return nil, fmt.Errorf("unmarshal args: expected array, got %s", ir.Kind(v))
	}
	if len(arr) == 0 {
		return nil, nil
	}
	return ir.Native(arr).([]any), nil
}

// rowValue converts an insert value to a SQLite parameter.
// Lists and maps have no column representation.
func rowValue(column string, value any) (any, error) {
	v := ir.Of(value)
	switch v.(type) {
	case ir.Array, ir.Object:
		return nil, fmt.Errorf("column %s: cannot store %s value", column, ir.Kind(v))
	}
	return ir.Native(v), nil
}
