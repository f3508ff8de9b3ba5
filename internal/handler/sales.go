package handler

import (
	"net/http"
	"strconv"

	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	svc service.SaleService
}

func NewSalesHandler(svc service.SaleService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// Record commits a checkout cart atomically with its stock decrements.
func (h *SalesHandler) Record(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Recent lists the latest sale lines, newest first.
func (h *SalesHandler) Recent(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	rows, err := h.svc.RecentSales(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// MemberPurchases lists a member's purchase history, newest first.
func (h *SalesHandler) MemberPurchases(c *gin.Context) {
	rows, err := h.svc.MemberPurchases(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
