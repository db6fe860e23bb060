// Package cond builds parameterized SQL WHERE-clause fragments from column
// names and Go values, and composes them with AND, OR and NOT.
//
// A Condition is a template containing ? placeholders plus the values bound
// to them, in order:
//
//	c := cond.And(
//	    cond.MaybeFind("name", params.Name),
//	    cond.MaybeFind("postcode", params.Postcode),
//	    cond.MaybeFind("ip", params.IP),
//	)
//	rows, err := db.QueryContext(ctx, "SELECT * FROM customers WHERE "+c.Template, c.Args...)
//
// (When every filter is absent, c is the zero Condition; check IsZero before
// splicing it into a statement.)
//
// # Strict and relaxed builders
//
// Every builder comes in two forms. The Maybe form returns the zero Condition
// (the absence sentinel, "omit this filter") when the value is absent. The
// strict form turns an absent value into an explicit NULL test. A value is
// absent when it is nil or the empty string.
//
//	cond.MaybeEq("foo", nil) // zero Condition
//	cond.Eq("foo", nil)      // foo IS NULL
//
// In and Find are the only builders that can fail; both return an error
// wrapping ErrInvalidArgument when given an empty list.
//
// # Dispatch
//
// Find and MaybeFind try, in order: list membership, IP address expansion,
// then LIKE/equality. A list of IP strings is a membership list and is not
// expanded.
//
// Every function is pure and safe for concurrent use. Returned conditions
// never share memory with their inputs.
package cond
