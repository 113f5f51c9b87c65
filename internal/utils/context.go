// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, JWT token generation and validation,
// and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SubjectIDCtxKey is the key used to store the authenticated caller
// identifier in the context. Used together with GetSubjectIDFromContext
// for type-safe retrieval.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.SubjectIDCtxKey, int64(42))
var SubjectIDCtxKey = contextKey("subjectID")

// GetSubjectIDFromContext retrieves the authenticated caller identifier
// from the context.
//
// Returns the identifier of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetSubjectIDFromContext(ctx context.Context) (int64, bool) {
	subjectID, ok := ctx.Value(SubjectIDCtxKey).(int64)
	return subjectID, ok
}
