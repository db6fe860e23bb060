// Package filterir provides the filter intermediate representation: a small
// tree describing which condition builder to apply to which column and value,
// and how the results combine.
//
// Filter documents (CUE files, YAML scenarios) compile into this IR, and
// querysql turns it into a cond.Condition:
//
//	[CUE / YAML] → [filter IR] → [cond.Condition] → [SQLite]
//
// SEALED INTERFACE:
//
// Node is a sealed interface using the marker method pattern. Only Term, All,
// Any and Not implement it, so backends can switch exhaustively:
//
//	switch n := node.(type) {
//	case Term:
//	    // builder call
//	case All, Any:
//	    // AND / OR group
//	case Not:
//	    // negation
//	}
//
// Pointer forms (*Term, *All, ...) are accepted everywhere a value form is.
//
// ABSENCE:
//
// A term whose relaxed builder has nothing to filter on compiles to the zero
// condition, and groups drop it. An All whose terms are all absent is itself
// absent, which the store treats as "no WHERE clause".
//
// Validate reports suspicious trees as warnings. It never rejects a tree;
// anything that compiles is executed as written.
package filterir
