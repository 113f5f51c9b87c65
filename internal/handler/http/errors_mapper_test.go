package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-bulk-notes/internal/service"
	"github.com/MKhiriev/go-bulk-notes/internal/store"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid data",
			err:  service.ErrInvalidDataProvided,
			want: http.StatusBadRequest,
		},
		{
			name: "wrapped invalid data",
			err:  fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, errors.New("title missing")),
			want: http.StatusBadRequest,
		},
		{
			name: "note not found",
			err:  store.ErrNoteNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "duplicate note",
			err:  store.ErrNoteAlreadyExists,
			want: http.StatusConflict,
		},
		{
			name: "database failure",
			err:  store.ErrExecutingQuery,
			want: http.StatusInternalServerError,
		},
		{
			name: "unknown error",
			err:  errors.New("mystery"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
