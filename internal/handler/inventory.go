package handler

import (
	"net/http"
	"time"

	"github.com/wirunw/pms2025/internal/apierror"
	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	svc service.InventoryService
}

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Receive registers a newly received lot.
func (h *InventoryHandler) Receive(c *gin.Context) {
	var req dto.ReceiveLotRequest
	if !bindAndValidate(c, &req) {
		return
	}
	lot, err := h.svc.Receive(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lot)
}

// SellableLots lists a drug's lots with stock and valid expiry, FEFO order.
// An optional as_of=YYYY-MM-DD query overrides the expiry cutoff.
func (h *InventoryHandler) SellableLots(c *gin.Context) {
	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("as_of must be YYYY-MM-DD"))
			return
		}
		asOf = parsed
	}
	lots, err := h.svc.ListSellableLots(c.Request.Context(), c.Param("drugId"), asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}

// Summary aggregates in-stock lots per drug.
func (h *InventoryHandler) Summary(c *gin.Context) {
	summary, err := h.svc.SummarizeByDrug(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
