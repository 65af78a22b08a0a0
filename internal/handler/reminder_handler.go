package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/user/dayboard/backend/internal/dto"
	"github.com/user/dayboard/backend/internal/middleware"
	"github.com/user/dayboard/backend/internal/service"
	apperrors "github.com/user/dayboard/backend/pkg/errors"
)

type ReminderHandler struct {
	reminderService *service.ReminderService
}

func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// List handles GET /api/reminders
func (h *ReminderHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	resp, err := h.reminderService.List(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/reminders
func (h *ReminderHandler) Create(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req dto.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.ValidationError(err.Error()))
		return
	}

	reminder, err := h.reminderService.Create(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ReminderResponse{Reminder: *reminder})
}

// Patch handles PATCH /api/reminders/:id. An empty body toggles the status;
// otherwise the recognized fields (title, dueAt+hasTime, areaId) are applied.
func (h *ReminderHandler) Patch(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	reminderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.ErrReminderNotFound)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, apperrors.ErrBadRequest)
		return
	}

	req, err := dto.ParseUpdateReminderRequest(body)
	if err != nil {
		respondError(c, apperrors.ValidationError(err.Error()))
		return
	}

	var reminder *dto.ReminderDTO
	if req.IsToggle() {
		reminder, err = h.reminderService.Toggle(userID, reminderID)
	} else {
		reminder, err = h.reminderService.Update(userID, reminderID, req)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReminderResponse{Reminder: *reminder})
}

// Delete handles DELETE /api/reminders/:id
func (h *ReminderHandler) Delete(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	reminderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.ErrReminderNotFound)
		return
	}

	if err := h.reminderService.Delete(userID, reminderID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
