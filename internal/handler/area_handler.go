package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/dayboard/backend/internal/dto"
	"github.com/user/dayboard/backend/internal/middleware"
	"github.com/user/dayboard/backend/internal/service"
	apperrors "github.com/user/dayboard/backend/pkg/errors"
)

type AreaHandler struct {
	areaService *service.AreaService
}

func NewAreaHandler(areaService *service.AreaService) *AreaHandler {
	return &AreaHandler{areaService: areaService}
}

// List handles GET /api/areas
func (h *AreaHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	resp, err := h.areaService.List(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/areas. Responds 200 rather than 201 because the
// upsert may return an area that already existed.
func (h *AreaHandler) Create(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req dto.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.ValidationError("Label is required"))
		return
	}

	area, err := h.areaService.Create(userID, req.Label)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AreaResponse{Area: *area})
}
