package models

// FieldErrors maps a payload field name to a human-readable validation
// message. An empty (or nil) map means the item passed validation.
type FieldErrors map[string]string

// ValidationError reports validation failure of a single payload item.
// Handlers render Fields as the 400 response body.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// BulkValidationError reports validation failure of a list payload.
//
// Items is positionally aligned with the request payload: entry i holds the
// field errors of payload item i, and an empty map marks an item that passed
// validation. This keeps the wire shape of the 400 body a plain JSON list of
// objects that clients can zip with what they submitted.
type BulkValidationError struct {
	Items []FieldErrors
}

func (e *BulkValidationError) Error() string {
	return "bulk validation failed"
}

// HasErrors reports whether at least one item carries field errors.
func (e *BulkValidationError) HasErrors() bool {
	for _, item := range e.Items {
		if len(item) > 0 {
			return true
		}
	}
	return false
}
