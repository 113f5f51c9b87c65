package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")

	ErrValidationNoNotesProvided   = errors.New("no notes provided")
	ErrValidationNoChangesProvided = errors.New("no changes provided")
	ErrValidationNoIDsProvided     = errors.New("no ids provided")
)
