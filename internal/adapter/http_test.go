// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/models"
)

func newTestClient(t *testing.T, serverURL string) *httpNotesClient {
	t.Helper()
	log := logger.NewLogger("test")

	c, err := NewHTTPNotesClient(HTTPClientConfig{BaseURL: serverURL}, log)
	require.NoError(t, err)
	return c.(*httpNotesClient)
}

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }

// ── Construction ────────────────────────────────────────────────────────────

func TestNewHTTPNotesClient_NormalizesBareHostPort(t *testing.T) {
	c, err := NewHTTPNotesClient(HTTPClientConfig{BaseURL: "localhost:8080"}, logger.NewLogger("test"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.(*httpNotesClient).client.BaseURL)
}

func TestNewHTTPNotesClient_EmptyAddress(t *testing.T) {
	_, err := NewHTTPNotesClient(HTTPClientConfig{}, logger.NewLogger("test"))
	require.Error(t, err)
}

func TestSetToken_Trimmed(t *testing.T) {
	c, err := NewHTTPNotesClient(HTTPClientConfig{BaseURL: "localhost:8080", Token: "  abc  "}, logger.NewLogger("test"))
	require.NoError(t, err)
	assert.Equal(t, "abc", c.Token())
}

// ── List ────────────────────────────────────────────────────────────────────

func TestList_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/notes/", r.URL.Path)
		assert.Equal(t, "work", r.URL.Query().Get("tag"))
		assert.Equal(t, "true", r.URL.Query().Get("done"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.Note{{ID: 1, Title: "first"}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	notes, err := c.List(context.Background(), models.NoteFilter{Tag: "work", Done: boolPtr(true)})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, int64(1), notes[0].ID)
}

func TestList_EmptyFilterOmitsParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("tag"))
		assert.False(t, r.URL.Query().Has("done"))
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	notes, err := c.List(context.Background(), models.NoteFilter{})

	require.NoError(t, err)
	assert.Empty(t, notes)
}

// ── Get ─────────────────────────────────────────────────────────────────────

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notes/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.Note{ID: 42, Title: "answer"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	note, err := c.Get(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, "answer", note.Title)
}

func TestGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Get(context.Background(), 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── CreateMany ──────────────────────────────────────────────────────────────

func TestCreateMany_SendsListAndBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var payload []models.Note
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload, 2)

		payload[0].ID, payload[1].ID = 1, 2
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("secret")

	created, err := c.CreateMany(context.Background(), []models.Note{{Title: "a"}, {Title: "b"}})

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, int64(2), created[1].ID)
}

func TestCreateMany_BulkValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{},{"title":"this field is required"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.CreateMany(context.Background(), []models.Note{{Title: "ok"}, {}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)

	var bulkErr *models.BulkValidationError
	require.ErrorAs(t, err, &bulkErr)
	require.Len(t, bulkErr.Items, 2)
	assert.Empty(t, bulkErr.Items[0])
	assert.Equal(t, "this field is required", bulkErr.Items[1]["title"])
}

// ── UpdateMany ──────────────────────────────────────────────────────────────

func TestUpdateMany_FullUsesPut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		_ = json.NewEncoder(w).Encode([]models.Note{{ID: 1, Title: "renamed"}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	updated, err := c.UpdateMany(context.Background(), []models.NoteChange{
		{ID: int64Ptr(1), Title: strPtr("renamed"), Body: strPtr(""), Tag: strPtr(""), Done: boolPtr(false)},
	}, false)

	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "renamed", updated[0].Title)
}

func TestUpdateMany_PartialUsesPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)

		var payload []models.NoteChange
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload, 1)
		assert.Nil(t, payload[0].Title)
		require.NotNil(t, payload[0].Done)

		_ = json.NewEncoder(w).Encode([]models.Note{{ID: 1, Done: true}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	updated, err := c.UpdateMany(context.Background(), []models.NoteChange{{ID: int64Ptr(1), Done: boolPtr(true)}}, true)

	require.NoError(t, err)
	assert.True(t, updated[0].Done)
}

func TestUpdateMany_MissingIdentityValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{"id":"note with id 99 does not exist"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.UpdateMany(context.Background(), []models.NoteChange{{ID: int64Ptr(99), Done: boolPtr(true)}}, true)

	require.Error(t, err)

	var bulkErr *models.BulkValidationError
	require.ErrorAs(t, err, &bulkErr)
	assert.Contains(t, bulkErr.Items[0]["id"], "does not exist")
}

// ── DeleteMany / Delete ─────────────────────────────────────────────────────

func TestDeleteMany_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/notes/", r.URL.Path)
		assert.Equal(t, "1,2,3", r.URL.Query().Get("idList"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.DeleteMany(context.Background(), []int64{1, 2, 3})

	require.NoError(t, err)
}

func TestDeleteMany_EmptyIDsRejectedByServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, r.URL.Query().Has("idList"))
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.DeleteMany(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestDelete_Single(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/notes/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	require.NoError(t, c.Delete(context.Background(), 7))
}

// ── Version ─────────────────────────────────────────────────────────────────

func TestVersion_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		_, _ = w.Write([]byte("1.2.3\n"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	version, err := c.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)
}

func TestRequestError_ServerUnreachable(t *testing.T) {
	c, err := NewHTTPNotesClient(HTTPClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
	}, logger.NewLogger("test"))
	require.NoError(t, err)

	_, err = c.Version(context.Background())
	require.Error(t, err)
}

// ── Error mapping ───────────────────────────────────────────────────────────

func TestMapHTTPError_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal Server Error"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.List(context.Background(), models.NoteFilter{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
}

func TestMapHTTPError_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Get(context.Background(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDecodeValidationBody_PlainTextReturnsNil(t *testing.T) {
	assert.Nil(t, decodeValidationBody("invalid data provided"))
	assert.Nil(t, decodeValidationBody(""))
	assert.Nil(t, decodeValidationBody("[not json"))
}
