// Package ir provides the tagged value variant that condition builders
// dispatch on.
//
// Builders accept arbitrary Go values and normalize them with Of. The sealed
// Value interface then lets every dispatcher use an exhaustive type switch
// instead of duck typing:
//
//	switch v := ir.Of(value).(type) {
//	case ir.Array:
//	    // membership list
//	case ir.String:
//	    // IP literal, LIKE pattern or plain equality
//	default:
//	    // scalar equality
//	}
//
// This package contains type definitions and serialization only. It imports
// nothing internal, so every other package can depend on it.
//
// Key design constraints:
//   - Absent means Null or the empty String (IsAbsent)
//   - Bind values are produced with Native and are plain Go values
//   - Canonical JSON (MarshalCanonical) is the only encoding used for
//     golden files, so snapshots are byte-stable
package ir
