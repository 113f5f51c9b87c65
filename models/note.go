package models

import "time"

// Note is a single stored record managed by the bulk REST API.
//
// ID is the identity used to match payload items against existing records
// during bulk updates and upsert-style bulk creates. A zero ID on an incoming
// item means "new record".
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title" validate:"required,max=200"`
	Body      string    `json:"body" validate:"max=10000"`
	Tag       string    `json:"tag" validate:"max=64"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteChange describes one item of a bulk update payload.
//
// All fields are pointers so that a partial update (PATCH) can distinguish
// "field absent from payload" (nil, keep stored value) from "field explicitly
// set" (non-nil, overwrite). A full update (PUT) requires every mutable field
// to be present. A nil ID marks an item whose identity is absent, which is
// reported positionally during validation.
type NoteChange struct {
	ID    *int64  `json:"id,omitempty" validate:"required,gt=0"`
	Title *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Body  *string `json:"body,omitempty" validate:"omitempty,max=10000"`
	Tag   *string `json:"tag,omitempty" validate:"omitempty,max=64"`
	Done  *bool   `json:"done,omitempty"`
}

// Apply copies the non-nil fields of the change onto note.
func (c NoteChange) Apply(note *Note) {
	if c.Title != nil {
		note.Title = *c.Title
	}
	if c.Body != nil {
		note.Body = *c.Body
	}
	if c.Tag != nil {
		note.Tag = *c.Tag
	}
	if c.Done != nil {
		note.Done = *c.Done
	}
}

// NoteFilter narrows the set of records an operation may touch. Every bulk
// operation is restricted to the records matching the filter, the same way
// list requests are.
type NoteFilter struct {
	// Done filters by completion state when non-nil.
	Done *bool

	// Tag filters by exact tag value when non-empty.
	Tag string
}

// IsZero reports whether the filter matches every record.
func (f NoteFilter) IsZero() bool {
	return f.Done == nil && f.Tag == ""
}
