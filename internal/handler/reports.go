package handler

import (
	"encoding/csv"
	"net/http"
	"strings"

	"github.com/wirunw/pms2025/internal/apierror"
	"github.com/wirunw/pms2025/internal/infra"
	"github.com/wirunw/pms2025/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	reports service.ReportService
	exports service.ExportService
}

func NewReportsHandler(reports service.ReportService, exports service.ExportService) *ReportsHandler {
	return &ReportsHandler{reports: reports, exports: exports}
}

// Get computes the KPI report for the window containing ref (default: now).
func (h *ReportsHandler) Get(c *gin.Context) {
	report, err := h.reports.BuildReport(c.Request.Context(), c.Param("period"), c.Query("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Export renders the report as CSV (default) or PDF. The sections query
// selects a comma-separated subset of {sales, inventory, thaiFda}.
func (h *ReportsHandler) Export(c *gin.Context) {
	report, err := h.reports.BuildReport(c.Request.Context(), c.Param("period"), c.Query("ref"))
	if err != nil {
		respondError(c, err)
		return
	}

	var sections []string
	if raw := c.Query("sections"); raw != "" {
		sections = strings.Split(raw, ",")
	}
	rows, err := h.exports.ReportRows(report, sections)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := "report_" + report.Label
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		writeCSV(c, filename+".csv", rows)
	case "pdf":
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.pdf"`)
		c.Header("Content-Type", "application/pdf")
		c.Status(http.StatusOK)
		if err := infra.WriteRowsPDF(c.Writer, "KPI Report "+report.Label, rows); err != nil {
			_ = c.Error(err)
		}
	default:
		c.JSON(http.StatusBadRequest, apierror.New("format must be csv or pdf"))
	}
}

// ExportTable dumps one raw table as CSV.
func (h *ReportsHandler) ExportTable(c *gin.Context) {
	table := c.Param("table")
	rows, err := h.exports.TableRows(c.Request.Context(), table)
	if err != nil {
		respondError(c, err)
		return
	}
	writeCSV(c, table+".csv", rows)
}

func writeCSV(c *gin.Context, filename string, rows [][]string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	for _, row := range rows {
		if len(row) == 0 {
			row = []string{""}
		}
		if err := w.Write(row); err != nil {
			_ = c.Error(err)
			return
		}
	}
	w.Flush()
}
