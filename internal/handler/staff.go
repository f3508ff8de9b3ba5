package handler

import (
	"net/http"
	"time"

	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/model"
	"github.com/wirunw/pms2025/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StaffHandler struct {
	repo repository.StaffRepository
}

func NewStaffHandler(repo repository.StaffRepository) *StaffHandler {
	return &StaffHandler{repo: repo}
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.CreateStaffRequest
	if !bindAndValidate(c, &req) {
		return
	}
	staff := &model.Staff{
		StaffID:       uuid.New().String(),
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		Position:      req.Position,
		Phone:         req.Phone,
		Email:         req.Email,
		DateCreated:   time.Now().UTC(),
	}
	if err := h.repo.Create(c.Request.Context(), staff); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, staffToResponse(staff))
}

func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.StaffResponse, len(staff))
	for i := range staff {
		resp[i] = staffToResponse(&staff[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) Get(c *gin.Context) {
	staff, err := h.repo.FindByStaffID(c.Request.Context(), c.Param("staffId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, staffToResponse(staff))
}

func staffToResponse(s *model.Staff) dto.StaffResponse {
	return dto.StaffResponse{
		StaffID:       s.StaffID,
		FullName:      s.FullName,
		LicenseNumber: s.LicenseNumber,
		Position:      s.Position,
		Phone:         s.Phone,
		Email:         s.Email,
		DateCreated:   s.DateCreated.Format(time.RFC3339),
	}
}
