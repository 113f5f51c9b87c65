package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/internal/service"
	"github.com/MKhiriev/go-bulk-notes/internal/store"
	"github.com/MKhiriev/go-bulk-notes/internal/utils"
	"github.com/MKhiriev/go-bulk-notes/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:         http.StatusBadRequest,
	service.ErrValidationNoNotesProvided:   http.StatusBadRequest,
	service.ErrValidationNoChangesProvided: http.StatusBadRequest,
	service.ErrValidationNoIDsProvided:     http.StatusBadRequest,
	service.ErrVersionIsNotSpecified:       http.StatusBadRequest,

	store.ErrNoteNotFound:      http.StatusNotFound,
	store.ErrNoteAlreadyExists: http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError renders err as an HTTP response.
//
// Validation errors carry their own wire shape: a list payload failure is a
// JSON list of field→message maps positionally aligned with the request
// payload, a single-item failure is one field→message map. Everything else
// goes through the error→status map with a plain-text body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var bulkErr *models.BulkValidationError
	if errors.As(err, &bulkErr) {
		if _, writeErr := utils.WriteJSON(w, bulkErr.Items, http.StatusBadRequest); writeErr != nil {
			log.Err(writeErr).Str("func", "*Handler.writeError").Msg("failed to write bulk validation error response")
		}
		return
	}

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		if _, writeErr := utils.WriteJSON(w, validationErr.Fields, http.StatusBadRequest); writeErr != nil {
			log.Err(writeErr).Str("func", "*Handler.writeError").Msg("failed to write validation error response")
		}
		return
	}

	status := statusFromError(err)
	http.Error(w, http.StatusText(status), status)
}
