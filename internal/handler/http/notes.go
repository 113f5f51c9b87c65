package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-bulk-notes/internal/app"
	"github.com/MKhiriev/go-bulk-notes/internal/bulk"
	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/internal/utils"
	"github.com/MKhiriev/go-bulk-notes/models"
)

const idListParam = "idList"

// listNotes handles GET /api/notes/ returning the filtered collection. The
// same filter parameters (`done`, `tag`) restrict every bulk operation, so
// this endpoint shows exactly the record set bulk calls may touch.
func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	filter, fieldErrs := parseNoteFilter(r)
	if fieldErrs != nil {
		utils.WriteJSON(w, fieldErrs, http.StatusBadRequest)
		return
	}

	notes, err := h.services.NoteService.ListNotes(r.Context(), filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listNotes").Msg("error listing notes")
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

// getNote handles GET /api/notes/{noteID}.
func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil {
		http.Error(w, app.MsgInvalidNoteID, http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.GetNote(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNote").Int64("note_id", id).Msg("error getting note")
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

// createNotes handles POST /api/notes/.
//
// A JSON list body — or any body when post_force_bulk is enabled — takes the
// bulk path: every item is validated first, then the whole batch is persisted
// and serialized back with a 201. A single JSON object takes the plain
// single-object create path.
func (h *Handler) createNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createNotes").Msg("error reading request body")
		http.Error(w, app.MsgErrorReadingBody, http.StatusBadRequest)
		return
	}

	if !bulk.IsListPayload(body) && !h.bulkCfg.PostForceBulk {
		h.createSingleNote(w, r, body)
		return
	}

	var notes []*models.Note
	if bulk.IsListPayload(body) {
		if jsonErr := json.Unmarshal(body, &notes); jsonErr != nil {
			log.Err(jsonErr).Str("func", "*Handler.createNotes").Msg("Invalid JSON was passed")
			http.Error(w, app.MsgInvalidJSONPassed, http.StatusBadRequest)
			return
		}
	} else {
		// post_force_bulk: a single object rides the bulk path as a
		// one-element batch
		var note models.Note
		if jsonErr := json.Unmarshal(body, &note); jsonErr != nil {
			log.Err(jsonErr).Str("func", "*Handler.createNotes").Msg("Invalid JSON was passed")
			http.Error(w, app.MsgInvalidJSONPassed, http.StatusBadRequest)
			return
		}
		notes = []*models.Note{&note}
	}

	filter, fieldErrs := parseNoteFilter(r)
	if fieldErrs != nil {
		utils.WriteJSON(w, fieldErrs, http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.BulkCreate(r.Context(), filter, notes, h.bulkCfg.PostAllowUpdate); err != nil {
		log.Err(err).Str("func", "*Handler.createNotes").Int("count", len(notes)).Msg("error bulk creating notes")
		h.writeError(w, r, err)
		return
	}

	created := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		created = append(created, *note)
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// createSingleNote is the degradation target of createNotes for plain
// object bodies.
func (h *Handler) createSingleNote(w http.ResponseWriter, r *http.Request, body []byte) {
	log := logger.FromRequest(r)

	var note models.Note
	if err := json.Unmarshal(body, &note); err != nil {
		log.Err(err).Str("func", "*Handler.createSingleNote").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSONPassed, http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.CreateNote(r.Context(), &note); err != nil {
		log.Err(err).Str("func", "*Handler.createSingleNote").Msg("error creating note")
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

// bulkUpdateNotes handles PUT /api/notes/: full update, every mutable field
// of every item required.
func (h *Handler) bulkUpdateNotes(w http.ResponseWriter, r *http.Request) {
	h.applyBulkUpdate(w, r, false)
}

// partialBulkUpdateNotes handles PATCH /api/notes/: absent fields are left
// unchanged on the matched records.
func (h *Handler) partialBulkUpdateNotes(w http.ResponseWriter, r *http.Request) {
	h.applyBulkUpdate(w, r, true)
}

func (h *Handler) applyBulkUpdate(w http.ResponseWriter, r *http.Request, partial bool) {
	log := logger.FromRequest(r)

	var changes []models.NoteChange
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		log.Err(err).Str("func", "*Handler.applyBulkUpdate").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSONPassed, http.StatusBadRequest)
		return
	}

	filter, fieldErrs := parseNoteFilter(r)
	if fieldErrs != nil {
		utils.WriteJSON(w, fieldErrs, http.StatusBadRequest)
		return
	}

	updated, err := h.services.NoteService.BulkUpdate(r.Context(), filter, changes, partial)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.applyBulkUpdate").
			Int("count", len(changes)).
			Bool("partial", partial).
			Msg("error bulk updating notes")
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

// bulkDestroyNotes handles DELETE /api/notes/?idList=1,2,3.
//
// A missing, empty or malformed idList yields 400 with an empty body and
// nothing is deleted. Ids naming no record of the filtered set are ignored.
func (h *Handler) bulkDestroyNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	query := r.URL.Query()
	if !query.Has(idListParam) {
		log.Warn().Str("func", "*Handler.bulkDestroyNotes").Msg("idList parameter is missing")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ids, err := bulk.ParseIDList(query.Get(idListParam))
	if err != nil {
		log.Err(err).Str("func", "*Handler.bulkDestroyNotes").Msg("malformed idList parameter")
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if len(ids) == 0 {
		log.Warn().Str("func", "*Handler.bulkDestroyNotes").Msg("idList parameter is empty")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	filter, fieldErrs := parseNoteFilter(r)
	if fieldErrs != nil {
		utils.WriteJSON(w, fieldErrs, http.StatusBadRequest)
		return
	}

	if _, err := h.services.NoteService.BulkDestroy(r.Context(), filter, ids); err != nil {
		log.Err(err).
			Str("func", "*Handler.bulkDestroyNotes").
			Int("ids_count", len(ids)).
			Msg("error bulk destroying notes")
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteNote handles DELETE /api/notes/{noteID}.
func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil {
		http.Error(w, app.MsgInvalidNoteID, http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.DeleteNote(r.Context(), id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteNote").Int64("note_id", id).Msg("error deleting note")
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseNoteFilter reads the collection filter parameters (`done`, `tag`)
// from the query string. A malformed `done` value is reported as a field
// error so the client gets the usual 400 mapping shape.
func parseNoteFilter(r *http.Request) (models.NoteFilter, models.FieldErrors) {
	query := r.URL.Query()

	filter := models.NoteFilter{Tag: query.Get("tag")}

	if rawDone := query.Get("done"); rawDone != "" {
		done, err := strconv.ParseBool(rawDone)
		if err != nil {
			return models.NoteFilter{}, models.FieldErrors{"done": app.MsgMustBeBoolean}
		}
		filter.Done = &done
	}

	return filter, nil
}
