// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events publishes note change events to NATS.
//
// The publisher is wired into the bulk operation pipeline as a set of
// post-hooks: after a batch has been persisted (or deleted) one event
// carrying the whole batch goes out on "<prefix>.saved" or
// "<prefix>.deleted". Publishing is best-effort; a failed publish is logged
// and never fails the request that triggered it.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/MKhiriev/go-bulk-notes/internal/bulk"
	"github.com/MKhiriev/go-bulk-notes/internal/config"
	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/models"
)

// SavedEvent is the wire shape of a "<prefix>.saved" event.
type SavedEvent struct {
	Action     string        `json:"action"`
	Notes      []models.Note `json:"notes"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// DeletedEvent is the wire shape of a "<prefix>.deleted" event.
type DeletedEvent struct {
	Action     string    `json:"action"`
	IDs        []int64   `json:"ids"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher sends note change events over a NATS connection. The zero-value
// (nil) Publisher is valid and publishes nothing, so callers can wire it
// unconditionally and let configuration decide.
type Publisher struct {
	conn          *nats.Conn
	subjectPrefix string

	logger *logger.Logger

	now func() time.Time
}

// NewPublisher connects to the NATS server named by cfg.NATSURL.
// An empty URL disables event publishing: the returned Publisher is nil,
// which every method treats as a no-op.
func NewPublisher(cfg config.Events, log *logger.Logger) (*Publisher, error) {
	if cfg.NATSURL == "" {
		log.Info().Str("func", "events.NewPublisher").Msg("no NATS URL configured, change events disabled")
		return nil, nil
	}

	conn, err := nats.Connect(cfg.NATSURL, nats.Name("go-bulk-notes"))
	if err != nil {
		log.Err(err).Str("func", "events.NewPublisher").Msg("failed to connect to NATS")
		return nil, err
	}

	log.Info().
		Str("func", "events.NewPublisher").
		Str("url", cfg.NATSURL).
		Str("subject_prefix", cfg.SubjectPrefix).
		Msg("connected to NATS")

	return &Publisher{
		conn:          conn,
		subjectPrefix: cfg.SubjectPrefix,
		logger:        log,
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

// Hooks returns the hook set that publishes one event per persisted batch.
// Safe to call on a nil Publisher: the returned hooks do nothing.
func (p *Publisher) Hooks() bulk.Hooks {
	if p == nil {
		return bulk.Hooks{}
	}

	return bulk.Hooks{
		PostBulkSave:   p.publishSaved,
		PostBulkDelete: p.publishDeleted,
	}
}

// Close drains the connection, letting buffered events flush.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}

	if err := p.conn.Drain(); err != nil {
		p.logger.Err(err).Str("func", "Publisher.Close").Msg("failed to drain NATS connection")
	}
}

func (p *Publisher) publishSaved(ctx context.Context, notes []*models.Note) {
	batch := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		batch = append(batch, *note)
	}

	p.publish(ctx, p.subjectPrefix+".saved", SavedEvent{
		Action:     "saved",
		Notes:      batch,
		OccurredAt: p.now(),
	})
}

func (p *Publisher) publishDeleted(ctx context.Context, notes []*models.Note) {
	ids := make([]int64, 0, len(notes))
	for _, note := range notes {
		ids = append(ids, note.ID)
	}

	p.publish(ctx, p.subjectPrefix+".deleted", DeletedEvent{
		Action:     "deleted",
		IDs:        ids,
		OccurredAt: p.now(),
	})
}

func (p *Publisher) publish(ctx context.Context, subject string, event any) {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(event)
	if err != nil {
		log.Err(err).
			Str("func", "Publisher.publish").
			Str("subject", subject).
			Msg("failed to marshal change event")
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		log.Err(err).
			Str("func", "Publisher.publish").
			Str("subject", subject).
			Msg("failed to publish change event")
		return
	}

	log.Debug().
		Str("func", "Publisher.publish").
		Str("subject", subject).
		Int("bytes", len(data)).
		Msg("published change event")
}
