package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bulk-notes/internal/config"
	"github.com/MKhiriev/go-bulk-notes/internal/logger"
)

func TestNewAppInfoService(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.2.3"}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", svc.GetAppVersion(context.Background()))
}

func TestNewAppInfoService_EmptyVersion(t *testing.T) {
	_, err := NewAppInfoService(config.App{}, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}
