package worker

// activity_worker.go
// Processes audit-trail jobs from QueueActivity and appends them to the
// activity_log table. Failures are logged and dropped; the emitting
// operation has already committed.

import (
	"context"
	"encoding/json"

	"github.com/wirunw/pms2025/internal/model"
	"github.com/wirunw/pms2025/internal/repository"

	"github.com/rs/zerolog/log"
)

// ActivityPayload is the job envelope sent to QueueActivity.
type ActivityPayload struct {
	EventType   string `json:"event_type"`
	Description string `json:"description"`
	Entity      string `json:"entity"`
	EntityID    string `json:"entity_id"`
	PerformedBy string `json:"performed_by"`
}

// ActivityWorker persists audit events dequeued from Redis.
type ActivityWorker struct {
	logs repository.ActivityRepository
}

func NewActivityWorker(logs repository.ActivityRepository) *ActivityWorker {
	return &ActivityWorker{logs: logs}
}

func (w *ActivityWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ActivityPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("activity_worker: invalid payload")
		return
	}
	if payload.EventType == "" {
		log.Warn().Msg("activity_worker: empty event_type, skipping")
		return
	}

	entry := &model.ActivityLog{
		EventType:   payload.EventType,
		Description: payload.Description,
		Entity:      payload.Entity,
		EntityID:    payload.EntityID,
		PerformedBy: payload.PerformedBy,
	}
	if err := w.logs.Create(ctx, entry); err != nil {
		log.Error().Err(err).Str("event", payload.EventType).Msg("activity_worker: failed to persist event")
		return
	}
	log.Debug().Str("event", payload.EventType).Str("entity_id", payload.EntityID).Msg("activity_worker: event recorded")
}
