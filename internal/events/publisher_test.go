package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bulk-notes/internal/config"
	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/models"
)

func TestNewPublisher_DisabledWithoutURL(t *testing.T) {
	publisher, err := NewPublisher(config.Events{}, logger.Nop())
	require.NoError(t, err)
	assert.Nil(t, publisher)
}

func TestPublisher_NilIsSafe(t *testing.T) {
	var publisher *Publisher

	hooks := publisher.Hooks()
	assert.Nil(t, hooks.PostBulkSave)
	assert.Nil(t, hooks.PostBulkDelete)

	// firing the empty hook set must not panic
	hooks.FirePostBulkSave(context.Background(), []*models.Note{{ID: 1}})
	hooks.FirePostBulkDelete(context.Background(), []*models.Note{{ID: 1}})

	publisher.Close()
}

func TestPublisher_HooksWired(t *testing.T) {
	publisher := &Publisher{subjectPrefix: "notes", logger: logger.Nop()}

	hooks := publisher.Hooks()
	assert.NotNil(t, hooks.PostBulkSave)
	assert.NotNil(t, hooks.PostBulkDelete)
	assert.Nil(t, hooks.PreSave)
	assert.Nil(t, hooks.PreBulkDelete)
}
