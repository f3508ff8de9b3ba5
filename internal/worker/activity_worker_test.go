package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/wirunw/pms2025/internal/model"
	"github.com/wirunw/pms2025/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubActivityRepo struct {
	entries []model.ActivityLog
}

func (r *stubActivityRepo) Create(_ context.Context, e *model.ActivityLog) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubActivityRepo) Recent(_ context.Context, limit int) ([]model.ActivityLog, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

var _ repository.ActivityRepository = (*stubActivityRepo)(nil)

func TestActivityWorkerPersistsEvent(t *testing.T) {
	repo := &stubActivityRepo{}
	w := NewActivityWorker(repo)

	raw, err := json.Marshal(ActivityPayload{
		EventType:   "SaleRecorded",
		Description: "5 units across 2 lots",
		Entity:      "sale",
		EntityID:    "S-100",
		PerformedBy: "somchai",
	})
	require.NoError(t, err)

	w.Process(context.Background(), raw)

	require.Len(t, repo.entries, 1)
	assert.Equal(t, "SaleRecorded", repo.entries[0].EventType)
	assert.Equal(t, "S-100", repo.entries[0].EntityID)
	assert.Equal(t, "somchai", repo.entries[0].PerformedBy)
}

func TestActivityWorkerSkipsBadPayloads(t *testing.T) {
	repo := &stubActivityRepo{}
	w := NewActivityWorker(repo)

	w.Process(context.Background(), json.RawMessage(`{not json`))
	w.Process(context.Background(), json.RawMessage(`{"description":"no event type"}`))

	assert.Empty(t, repo.entries)
}
