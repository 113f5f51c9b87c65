// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-bulk-notes server handlers, validators, and services.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidNoteID is returned when a path parameter cannot be parsed as
	// a numeric record identifier.
	MsgInvalidNoteID = "invalid note id"

	// MsgErrorReadingBody is returned when the request body cannot be read.
	MsgErrorReadingBody = "error reading request body"

	// MsgInvalidJSONPassed is returned when the request body cannot be
	// decoded as the expected JSON payload shape.
	MsgInvalidJSONPassed = "Invalid JSON was passed"

	// MsgFieldIsRequired marks a payload field that was absent or blank but
	// is mandatory for the requested operation.
	MsgFieldIsRequired = "this field is required"

	// MsgMustBeBoolean marks a query parameter that must parse as a boolean.
	MsgMustBeBoolean = "must be a boolean value"

	// MsgValueTooLongFmt carries one %s verb for the maximum length of the
	// offending field.
	MsgValueTooLongFmt = "ensure this value has at most %s characters"

	// MsgNoteDoesNotExistFmt carries one %d verb for the identifier of a
	// payload item that names no record in the restricted record set.
	MsgNoteDoesNotExistFmt = "note with id %d does not exist"
)
