package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bulk-notes/internal/config"
	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/internal/service"
	"github.com/MKhiriev/go-bulk-notes/internal/store"
	"github.com/MKhiriev/go-bulk-notes/models"
)

// ─────────────────────────────────────────────
// Mocks
// ─────────────────────────────────────────────

type mockNoteSvc struct {
	listFn        func(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	getFn         func(ctx context.Context, id int64) (models.Note, error)
	createFn      func(ctx context.Context, note *models.Note) error
	bulkCreateFn  func(ctx context.Context, filter models.NoteFilter, notes []*models.Note, allowUpdate bool) error
	bulkUpdateFn  func(ctx context.Context, filter models.NoteFilter, changes []models.NoteChange, partial bool) ([]models.Note, error)
	bulkDestroyFn func(ctx context.Context, filter models.NoteFilter, ids []int64) (int64, error)
	deleteFn      func(ctx context.Context, id int64) error
}

func (m *mockNoteSvc) ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockNoteSvc) GetNote(ctx context.Context, id int64) (models.Note, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Note{}, nil
}

func (m *mockNoteSvc) CreateNote(ctx context.Context, note *models.Note) error {
	if m.createFn != nil {
		return m.createFn(ctx, note)
	}
	return nil
}

func (m *mockNoteSvc) BulkCreate(ctx context.Context, filter models.NoteFilter, notes []*models.Note, allowUpdate bool) error {
	if m.bulkCreateFn != nil {
		return m.bulkCreateFn(ctx, filter, notes, allowUpdate)
	}
	return nil
}

func (m *mockNoteSvc) BulkUpdate(ctx context.Context, filter models.NoteFilter, changes []models.NoteChange, partial bool) ([]models.Note, error) {
	if m.bulkUpdateFn != nil {
		return m.bulkUpdateFn(ctx, filter, changes, partial)
	}
	return nil, nil
}

func (m *mockNoteSvc) BulkDestroy(ctx context.Context, filter models.NoteFilter, ids []int64) (int64, error) {
	if m.bulkDestroyFn != nil {
		return m.bulkDestroyFn(ctx, filter, ids)
	}
	return 0, nil
}

func (m *mockNoteSvc) DeleteNote(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockAppInfoSvc struct{}

func (m *mockAppInfoSvc) GetAppVersion(_ context.Context) string { return "test-version" }

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestHandler(t *testing.T, svc service.NoteService, bulkCfg config.Bulk) *Handler {
	t.Helper()
	return &Handler{
		services: &service.Services{
			NoteService:    svc,
			AppInfoService: &mockAppInfoSvc{},
		},
		bulkCfg: bulkCfg,
		logger:  logger.Nop(),
	}
}

// serve routes the request through the full router so URL params and
// middleware apply.
func serve(t *testing.T, h *Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func encodeBody(t *testing.T, v any) io.Reader {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

func int64Ptr(i int64) *int64 { return &i }

func strPtr(s string) *string { return &s }

// ─────────────────────────────────────────────
// GET /api/notes/
// ─────────────────────────────────────────────

func TestListNotes(t *testing.T) {
	svc := &mockNoteSvc{
		listFn: func(_ context.Context, filter models.NoteFilter) ([]models.Note, error) {
			require.NotNil(t, filter.Done)
			assert.True(t, *filter.Done)
			assert.Equal(t, "work", filter.Tag)
			return []models.Note{{ID: 1, Title: "a"}}, nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodGet, "/api/notes/?done=true&tag=work", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Title)
}

func TestListNotes_BadDoneParam(t *testing.T) {
	h := newTestHandler(t, &mockNoteSvc{}, config.Bulk{})

	req := httptest.NewRequest(http.MethodGet, "/api/notes/?done=banana", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "done")
}

// ─────────────────────────────────────────────
// GET /api/notes/{id}
// ─────────────────────────────────────────────

func TestGetNote(t *testing.T) {
	svc := &mockNoteSvc{
		getFn: func(_ context.Context, id int64) (models.Note, error) {
			assert.Equal(t, int64(7), id)
			return models.Note{ID: 7, Title: "found"}, nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodGet, "/api/notes/7", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "found")
}

func TestGetNote_NotFound(t *testing.T) {
	svc := &mockNoteSvc{
		getFn: func(_ context.Context, _ int64) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodGet, "/api/notes/404", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetNote_BadID(t *testing.T) {
	h := newTestHandler(t, &mockNoteSvc{}, config.Bulk{})

	req := httptest.NewRequest(http.MethodGet, "/api/notes/abc", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// POST /api/notes/ — create (single and bulk)
// ─────────────────────────────────────────────

func TestCreateNotes_SingleObjectBody(t *testing.T) {
	var bulkCalled bool
	svc := &mockNoteSvc{
		createFn: func(_ context.Context, note *models.Note) error {
			note.ID = 42
			return nil
		},
		bulkCreateFn: func(_ context.Context, _ models.NoteFilter, _ []*models.Note, _ bool) error {
			bulkCalled = true
			return nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodPost, "/api/notes/", strings.NewReader(`{"title":"solo"}`))
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.False(t, bulkCalled, "single object must not take the bulk path")

	var got models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(42), got.ID)
}

func TestCreateNotes_ListBody(t *testing.T) {
	svc := &mockNoteSvc{
		bulkCreateFn: func(_ context.Context, _ models.NoteFilter, notes []*models.Note, allowUpdate bool) error {
			require.Len(t, notes, 2)
			assert.False(t, allowUpdate)
			for i, note := range notes {
				note.ID = int64(i + 1)
			}
			return nil
		},
		createFn: func(_ context.Context, _ *models.Note) error {
			t.Fatal("list body must not take the single path")
			return nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	body := ` [{"title":"a"},{"title":"b"}]` // leading whitespace still sniffs as a list
	req := httptest.NewRequest(http.MethodPost, "/api/notes/", strings.NewReader(body))
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var got []models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestCreateNotes_ForceBulkWrapsSingleObject(t *testing.T) {
	svc := &mockNoteSvc{
		bulkCreateFn: func(_ context.Context, _ models.NoteFilter, notes []*models.Note, _ bool) error {
			require.Len(t, notes, 1)
			assert.Equal(t, "forced", notes[0].Title)
			return nil
		},
		createFn: func(_ context.Context, _ *models.Note) error {
			t.Fatal("post_force_bulk must route single objects through the bulk path")
			return nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{PostForceBulk: true})

	req := httptest.NewRequest(http.MethodPost, "/api/notes/", strings.NewReader(`{"title":"forced"}`))
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateNotes_AllowUpdateFlagPassedThrough(t *testing.T) {
	svc := &mockNoteSvc{
		bulkCreateFn: func(_ context.Context, _ models.NoteFilter, _ []*models.Note, allowUpdate bool) error {
			assert.True(t, allowUpdate)
			return nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{PostAllowUpdate: true})

	req := httptest.NewRequest(http.MethodPost, "/api/notes/", strings.NewReader(`[{"id":5,"title":"x"}]`))
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateNotes_ValidationErrorShape(t *testing.T) {
	svc := &mockNoteSvc{
		bulkCreateFn: func(_ context.Context, _ models.NoteFilter, _ []*models.Note, _ bool) error {
			return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, &models.BulkValidationError{
				Items: []models.FieldErrors{
					{},
					{"title": "this field is required"},
				},
			})
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodPost, "/api/notes/", strings.NewReader(`[{"title":"ok"},{}]`))
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// wire shape: plain JSON list positionally aligned with the payload
	var got []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Empty(t, got[0])
	assert.Equal(t, "this field is required", got[1]["title"])
}

func TestCreateNotes_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &mockNoteSvc{}, config.Bulk{})

	req := httptest.NewRequest(http.MethodPost, "/api/notes/", strings.NewReader(`[{bad json}`))
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON was passed")
}

// ─────────────────────────────────────────────
// PUT / PATCH /api/notes/
// ─────────────────────────────────────────────

func TestBulkUpdateNotes_PutIsFullUpdate(t *testing.T) {
	svc := &mockNoteSvc{
		bulkUpdateFn: func(_ context.Context, _ models.NoteFilter, changes []models.NoteChange, partial bool) ([]models.Note, error) {
			assert.False(t, partial)
			require.Len(t, changes, 1)
			return []models.Note{{ID: 1, Title: "updated"}}, nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	body := encodeBody(t, []models.NoteChange{
		{ID: int64Ptr(1), Title: strPtr("updated"), Body: strPtr(""), Tag: strPtr(""), Done: new(bool)},
	})
	req := httptest.NewRequest(http.MethodPut, "/api/notes/", body)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "updated")
}

func TestBulkUpdateNotes_PatchIsPartial(t *testing.T) {
	svc := &mockNoteSvc{
		bulkUpdateFn: func(_ context.Context, _ models.NoteFilter, _ []models.NoteChange, partial bool) ([]models.Note, error) {
			assert.True(t, partial)
			return []models.Note{}, nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodPatch, "/api/notes/", strings.NewReader(`[{"id":1,"done":true}]`))
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBulkUpdateNotes_MissingIdentityError(t *testing.T) {
	svc := &mockNoteSvc{
		bulkUpdateFn: func(_ context.Context, _ models.NoteFilter, _ []models.NoteChange, _ bool) ([]models.Note, error) {
			return nil, &models.BulkValidationError{
				Items: []models.FieldErrors{{"id": "note with id 404 does not exist"}},
			}
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodPut, "/api/notes/", strings.NewReader(`[{"id":404}]`))
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")
}

func TestBulkUpdateNotes_NonListBody(t *testing.T) {
	h := newTestHandler(t, &mockNoteSvc{}, config.Bulk{})

	req := httptest.NewRequest(http.MethodPut, "/api/notes/", strings.NewReader(`{"id":1}`))
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// DELETE /api/notes/ — bulk destroy
// ─────────────────────────────────────────────

func TestBulkDestroyNotes(t *testing.T) {
	svc := &mockNoteSvc{
		bulkDestroyFn: func(_ context.Context, _ models.NoteFilter, ids []int64) (int64, error) {
			assert.Equal(t, []int64{1, 2, 3}, ids)
			return 3, nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/?idList=1,2,3", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBulkDestroyNotes_MissingIDList(t *testing.T) {
	svc := &mockNoteSvc{
		bulkDestroyFn: func(_ context.Context, _ models.NoteFilter, _ []int64) (int64, error) {
			t.Fatal("destroy must not run without idList")
			return 0, nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBulkDestroyNotes_NonNumericEntriesRejected(t *testing.T) {
	svc := &mockNoteSvc{
		bulkDestroyFn: func(_ context.Context, _ models.NoteFilter, _ []int64) (int64, error) {
			t.Fatal("destroy must not run on a malformed idList")
			return 0, nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/?idList=1,x,3", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBulkDestroyNotes_EmptyIDList(t *testing.T) {
	h := newTestHandler(t, &mockNoteSvc{}, config.Bulk{})

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/?idList=", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBulkDestroyNotes_BlanksStripped(t *testing.T) {
	svc := &mockNoteSvc{
		bulkDestroyFn: func(_ context.Context, _ models.NoteFilter, ids []int64) (int64, error) {
			assert.Equal(t, []int64{1, 2}, ids)
			return 2, nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/?idList=1,%20,2,", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// ─────────────────────────────────────────────
// DELETE /api/notes/{id}
// ─────────────────────────────────────────────

func TestDeleteNote(t *testing.T) {
	svc := &mockNoteSvc{
		deleteFn: func(_ context.Context, id int64) error {
			assert.Equal(t, int64(9), id)
			return nil
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/9", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteNote_NotFound(t *testing.T) {
	svc := &mockNoteSvc{
		deleteFn: func(_ context.Context, _ int64) error {
			return store.ErrNoteNotFound
		},
	}
	h := newTestHandler(t, svc, config.Bulk{})

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/404", nil)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
