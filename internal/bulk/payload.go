// Package bulk contains the shared building blocks of the bulk-operation
// endpoints: list-payload detection, identifier-list parsing, and the hook
// set fired around single items and whole batches.
//
// The package is deliberately free of transport and storage concerns so the
// same primitives can back any resource handler that wants single-request
// create/update/destroy over many records.
package bulk

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidIDList is returned by ParseIDList when the identifier list
// contains an entry that is not a positive base-10 integer. Entries are
// rejected rather than silently dropped so a client typo cannot quietly
// shrink the set of records an operation touches.
var ErrInvalidIDList = errors.New("invalid id list")

// IsListPayload reports whether the JSON body is a list. Leading whitespace
// is skipped; no full parse is performed.
func IsListPayload(body []byte) bool {
	for _, b := range body {
		if unicode.IsSpace(rune(b)) {
			continue
		}
		return b == '['
	}
	return false
}

// ParseIDList parses a comma-separated list of record identifiers, as found
// in the destroy endpoint's idList query parameter.
//
// Surrounding whitespace is trimmed and blank entries are skipped, so
// "1, 2,,3" yields [1 2 3]. A non-numeric or non-positive entry yields
// [ErrInvalidIDList]. An all-blank input yields an empty, non-nil slice.
func ParseIDList(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id < 1 {
			return nil, ErrInvalidIDList
		}

		ids = append(ids, id)
	}

	return ids, nil
}
