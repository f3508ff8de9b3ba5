package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/wirunw/pms2025/internal/apierror"
	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const priceCacheTTL = 4 * time.Hour

// PriceCheckHandler serves the public price check endpoint.
// No authentication required — no side effects whatsoever.
type PriceCheckHandler struct {
	lots  repository.LotRepository
	drugs repository.DrugRepository
	rdb   *redis.Client
}

func NewPriceCheckHandler(lots repository.LotRepository, drugs repository.DrugRepository, rdb *redis.Client) *PriceCheckHandler {
	return &PriceCheckHandler{lots: lots, drugs: drugs, rdb: rdb}
}

func (h *PriceCheckHandler) GetPriceByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	ctx := c.Request.Context()
	cacheKey := "price:" + barcode

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PriceCheckResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	lot, err := h.lots.FindByBarcode(ctx, barcode)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.WithKind(apierror.KindNotFound, "product not found"))
		return
	}

	tradeName := lot.DrugID
	if drug, err := h.drugs.FindByDrugID(ctx, lot.DrugID); err == nil {
		tradeName = drug.TradeName
	}

	resp := dto.PriceCheckResponse{
		DrugID:       lot.DrugID,
		TradeName:    tradeName,
		LotNumber:    lot.LotNumber,
		SellingPrice: lot.SellingPrice,
		Quantity:     lot.Quantity,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, priceCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
