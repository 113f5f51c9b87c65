package validators

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-bulk-notes/internal/app"
	"github.com/MKhiriev/go-bulk-notes/models"
)

// noteValidator implements [NoteValidator] on top of go-playground/validator.
// Struct rules live in the `validate` tags of the models; the extra
// full-update requirement (every mutable field present) is enforced here
// because it depends on the partial flag, not on the struct shape.
type noteValidator struct {
	validate *validator.Validate
}

// NewNoteValidator constructs a [NoteValidator].
//
// Field names in the produced error mappings use the models' json tag names
// so the 400 response body refers to fields the way the client sent them.
func NewNoteValidator() NoteValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &noteValidator{validate: v}
}

func (nv *noteValidator) ValidateNote(ctx context.Context, note models.Note) models.FieldErrors {
	return nv.structErrors(ctx, note)
}

func (nv *noteValidator) ValidateNotes(ctx context.Context, notes []*models.Note) *models.BulkValidationError {
	bulkErr := &models.BulkValidationError{
		Items: make([]models.FieldErrors, len(notes)),
	}

	for i, note := range notes {
		fieldErrs := nv.ValidateNote(ctx, *note)
		if fieldErrs == nil {
			fieldErrs = models.FieldErrors{}
		}
		bulkErr.Items[i] = fieldErrs
	}

	if !bulkErr.HasErrors() {
		return nil
	}
	return bulkErr
}

func (nv *noteValidator) ValidateChange(ctx context.Context, change models.NoteChange, partial bool) models.FieldErrors {
	fieldErrs := nv.structErrors(ctx, change)

	if !partial {
		if fieldErrs == nil {
			fieldErrs = models.FieldErrors{}
		}
		requireField(fieldErrs, "title", change.Title == nil)
		requireField(fieldErrs, "body", change.Body == nil)
		requireField(fieldErrs, "tag", change.Tag == nil)
		requireField(fieldErrs, "done", change.Done == nil)
	}

	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

func (nv *noteValidator) ValidateChanges(ctx context.Context, changes []models.NoteChange, partial bool) *models.BulkValidationError {
	bulkErr := &models.BulkValidationError{
		Items: make([]models.FieldErrors, len(changes)),
	}

	for i, change := range changes {
		fieldErrs := nv.ValidateChange(ctx, change, partial)
		if fieldErrs == nil {
			fieldErrs = models.FieldErrors{}
		}
		bulkErr.Items[i] = fieldErrs
	}

	if !bulkErr.HasErrors() {
		return nil
	}
	return bulkErr
}

// structErrors runs the tag-based rules and converts the library's error
// type into the wire-level field mapping.
func (nv *noteValidator) structErrors(ctx context.Context, obj any) models.FieldErrors {
	err := nv.validate.StructCtx(ctx, obj)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return models.FieldErrors{"non_field_errors": err.Error()}
	}

	fieldErrs := make(models.FieldErrors, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs[fe.Field()] = messageForTag(fe)
	}

	return fieldErrs
}

func requireField(fieldErrs models.FieldErrors, name string, missing bool) {
	if missing {
		fieldErrs[name] = app.MsgFieldIsRequired
	}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return app.MsgFieldIsRequired
	case "max":
		return fmt.Sprintf(app.MsgValueTooLongFmt, fe.Param())
	case "gt":
		return fmt.Sprintf("ensure this value is greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
