package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/wirunw/pms2025/internal/repository"

	"github.com/gin-gonic/gin"
)

// ActivityHandler exposes the append-only audit trail (admin only).
type ActivityHandler struct {
	repo repository.ActivityRepository
}

func NewActivityHandler(repo repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{repo: repo}
}

func (h *ActivityHandler) Recent(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	entries, err := h.repo.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	type entryResponse struct {
		ID          string `json:"id"`
		EventType   string `json:"event_type"`
		Description string `json:"description"`
		Entity      string `json:"entity"`
		EntityID    string `json:"entity_id"`
		PerformedBy string `json:"performed_by"`
		CreatedAt   string `json:"created_at"`
	}
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = entryResponse{
			ID:          e.ID.String(),
			EventType:   e.EventType,
			Description: e.Description,
			Entity:      e.Entity,
			EntityID:    e.EntityID,
			PerformedBy: e.PerformedBy,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, resp)
}
