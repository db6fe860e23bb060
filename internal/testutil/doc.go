// Package testutil holds helpers shared by tests: the standard customers
// seed data and a fixed trace id generator for comparing command output.
package testutil
