package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/model"
	"github.com/wirunw/pms2025/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembersHandler struct {
	repo repository.MemberRepository
}

func NewMembersHandler(repo repository.MemberRepository) *MembersHandler {
	return &MembersHandler{repo: repo}
}

func (h *MembersHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if !bindAndValidate(c, &req) {
		return
	}
	member := &model.Member{
		MemberID:    uuid.New().String(),
		FullName:    req.FullName,
		NationalID:  req.NationalID,
		DOB:         req.DOB,
		Phone:       req.Phone,
		Allergies:   req.Allergies,
		Disease:     req.Disease,
		DateCreated: time.Now().UTC(),
	}
	if err := h.repo.Create(c.Request.Context(), member); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, memberToResponse(member))
}

func (h *MembersHandler) List(c *gin.Context) {
	var (
		members []model.Member
		err     error
	)
	if term := c.Query("q"); term != "" {
		members, err = h.repo.Search(c.Request.Context(), term)
	} else {
		members, err = h.repo.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.MemberResponse, len(members))
	for i := range members {
		resp[i] = memberToResponse(&members[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MembersHandler) Get(c *gin.Context) {
	member, err := h.repo.FindByMemberID(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, memberToResponse(member))
}

func memberToResponse(m *model.Member) dto.MemberResponse {
	resp := dto.MemberResponse{
		MemberID:    m.MemberID,
		FullName:    m.FullName,
		NationalID:  m.NationalID,
		DOB:         m.DOB,
		Phone:       m.Phone,
		Allergies:   []string{},
		Disease:     m.Disease,
		DateCreated: m.DateCreated.Format(time.RFC3339),
	}
	if m.Allergies != nil && *m.Allergies != "" {
		// Stored as a JSON string array; a malformed value degrades to a
		// single raw entry rather than failing the read.
		var items []string
		if err := json.Unmarshal([]byte(*m.Allergies), &items); err == nil {
			resp.Allergies = items
		} else {
			resp.Allergies = []string{*m.Allergies}
		}
	}
	return resp
}
