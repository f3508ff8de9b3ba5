package handler

import (
	"net/http"

	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/model"
	"github.com/wirunw/pms2025/internal/repository"

	"github.com/gin-gonic/gin"
)

// DrugsHandler exposes the formulary catalog. The catalog is reference data:
// create and read only, no updates that would rewrite sale history.
type DrugsHandler struct {
	repo repository.DrugRepository
	lots repository.LotRepository
}

func NewDrugsHandler(repo repository.DrugRepository, lots repository.LotRepository) *DrugsHandler {
	return &DrugsHandler{repo: repo, lots: lots}
}

func (h *DrugsHandler) Create(c *gin.Context) {
	var req dto.CreateDrugRequest
	if !bindAndValidate(c, &req) {
		return
	}
	drug := &model.Drug{
		DrugID:         req.DrugID,
		TradeName:      req.TradeName,
		GenericName:    req.GenericName,
		LegalCategory:  req.LegalCategory,
		PharmaCategory: req.PharmaCategory,
		Strength:       req.Strength,
		Unit:           req.Unit,
		Indication:     req.Indication,
		Caution:        req.Caution,
		ImageURL:       req.ImageURL,
		Interaction1:   req.Interaction1,
		Interaction2:   req.Interaction2,
		Interaction3:   req.Interaction3,
		Interaction4:   req.Interaction4,
		Interaction5:   req.Interaction5,
		MinStock:       req.MinStock,
		MaxStock:       req.MaxStock,
	}
	if err := h.repo.Create(c.Request.Context(), drug); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, drugToResponse(drug))
}

func (h *DrugsHandler) List(c *gin.Context) {
	var (
		drugs []model.Drug
		err   error
	)
	if term := c.Query("q"); term != "" {
		drugs, err = h.repo.Search(c.Request.Context(), term)
	} else {
		drugs, err = h.repo.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	// available=true narrows the catalog to drugs with at least one
	// in-stock lot.
	if c.Query("available") == "true" {
		inStock, err := h.lots.InStock(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		stocked := make(map[string]bool, len(inStock))
		for i := range inStock {
			stocked[inStock[i].DrugID] = true
		}
		filtered := drugs[:0]
		for _, d := range drugs {
			if stocked[d.DrugID] {
				filtered = append(filtered, d)
			}
		}
		drugs = filtered
	}
	resp := make([]dto.DrugResponse, len(drugs))
	for i := range drugs {
		resp[i] = drugToResponse(&drugs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DrugsHandler) Get(c *gin.Context) {
	drug, err := h.repo.FindByDrugID(c.Request.Context(), c.Param("drugId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, drugToResponse(drug))
}

func drugToResponse(d *model.Drug) dto.DrugResponse {
	return dto.DrugResponse{
		DrugID:         d.DrugID,
		TradeName:      d.TradeName,
		GenericName:    d.GenericName,
		LegalCategory:  d.LegalCategory,
		PharmaCategory: d.PharmaCategory,
		Strength:       d.Strength,
		Unit:           d.Unit,
		MinStock:       d.MinStock,
		MaxStock:       d.MaxStock,
	}
}
