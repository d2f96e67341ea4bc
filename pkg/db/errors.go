package db

import "strings"

// IsUniqueViolation reports whether err is a Postgres unique violation.
// With a constraint name it matches that specific constraint, which lets
// order submission distinguish a reference collision from other failures.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if constraintName == "" {
		return true
	}
	return strings.Contains(msg, constraintName)
}
