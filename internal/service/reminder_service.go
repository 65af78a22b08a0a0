package service

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/user/dayboard/backend/internal/dto"
	"github.com/user/dayboard/backend/internal/models"
	"github.com/user/dayboard/backend/internal/repository"
	apperrors "github.com/user/dayboard/backend/pkg/errors"
)

type ReminderService struct {
	reminderRepo *repository.ReminderRepository
	areaRepo     *repository.AreaRepository
}

func NewReminderService(
	reminderRepo *repository.ReminderRepository,
	areaRepo *repository.AreaRepository,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		areaRepo:     areaRepo,
	}
}

func (s *ReminderService) Create(userID uuid.UUID, req dto.CreateReminderRequest) (*dto.ReminderDTO, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.ValidationError("Title is required")
	}

	// Legacy clients still send retired enum values ("yearly"); store the
	// supported fallback rather than rejecting the row.
	frequency := models.CoerceFrequency(models.Frequency(req.Frequency))
	priority := models.CoercePriority(models.Priority(req.Priority))

	status := models.StatusPending
	if req.Status != nil {
		status = models.CoerceStatus(models.Status(*req.Status))
	}

	// Resolve the area: a supplied id must belong to the caller; without one
	// the reminder lands in the per-user "general" area, created on demand.
	var area *models.Area
	var err error
	if req.AreaID != nil {
		area, err = s.areaRepo.FindByIDAndUser(*req.AreaID, userID)
		if err != nil {
			return nil, apperrors.ValidationError("Invalid area")
		}
	} else {
		area, err = s.areaRepo.EnsureDefaultAreaExists(userID)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "Failed to resolve default area", http.StatusInternalServerError)
		}
	}

	note := ""
	if req.Note != nil {
		note = *req.Note
	}

	reminder := &models.Reminder{
		UserID:    userID,
		AreaID:    &area.ID,
		Title:     title,
		Note:      note,
		DueAt:     req.DueAt,
		HasTime:   req.HasTime,
		Frequency: frequency,
		Priority:  priority,
		Status:    status,
	}
	if status == models.StatusDone {
		now := time.Now()
		reminder.CompletedAt = &now
	}

	if err := s.reminderRepo.Create(reminder); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "Failed to create reminder", http.StatusInternalServerError)
	}
	reminder.Area = area

	result := dto.ReminderToDTO(reminder)
	return &result, nil
}

func (s *ReminderService) List(userID uuid.UUID) (*dto.ReminderListResponse, error) {
	reminders, err := s.reminderRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "Failed to list reminders", http.StatusInternalServerError)
	}

	return &dto.ReminderListResponse{
		Reminders: dto.RemindersToDTO(reminders),
	}, nil
}

// Toggle flips a reminder between pending and done. The next status is
// computed server-side from the stored row, so a stale client toggling twice
// converges instead of double-flipping.
func (s *ReminderService) Toggle(userID, reminderID uuid.UUID) (*dto.ReminderDTO, error) {
	if _, err := s.reminderRepo.FindByIDAndUser(reminderID, userID); err != nil {
		return nil, apperrors.ErrReminderNotFound
	}

	if err := s.reminderRepo.Toggle(reminderID); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "Failed to toggle reminder", http.StatusInternalServerError)
	}

	reminder, err := s.reminderRepo.FindByIDAndUser(reminderID, userID)
	if err != nil {
		return nil, apperrors.ErrReminderNotFound
	}

	result := dto.ReminderToDTO(reminder)
	return &result, nil
}

func (s *ReminderService) Update(userID, reminderID uuid.UUID, req *dto.UpdateReminderRequest) (*dto.ReminderDTO, error) {
	reminder, err := s.reminderRepo.FindByIDAndUser(reminderID, userID)
	if err != nil {
		return nil, apperrors.ErrReminderNotFound
	}

	if req.SetTitle {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.ValidationError("Title is required")
		}
		reminder.Title = title
	}

	if req.SetDue {
		// dueAt and hasTime change together; a cleared schedule cannot
		// carry a time of day.
		reminder.DueAt = req.DueAt
		if req.DueAt == nil {
			reminder.HasTime = false
		} else {
			reminder.HasTime = req.HasTime
		}
	}

	if req.SetArea {
		if req.AreaID != nil {
			area, err := s.areaRepo.FindByIDAndUser(*req.AreaID, userID)
			if err != nil {
				return nil, apperrors.ValidationError("Invalid area")
			}
			reminder.AreaID = &area.ID
			reminder.Area = area
		} else {
			reminder.AreaID = nil
			reminder.Area = nil
		}
	}

	if err := s.reminderRepo.Update(reminder); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "Failed to update reminder", http.StatusInternalServerError)
	}

	result := dto.ReminderToDTO(reminder)
	return &result, nil
}

func (s *ReminderService) Delete(userID, reminderID uuid.UUID) error {
	if _, err := s.reminderRepo.FindByIDAndUser(reminderID, userID); err != nil {
		return apperrors.ErrReminderNotFound
	}

	if err := s.reminderRepo.Delete(reminderID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "Failed to delete reminder", http.StatusInternalServerError)
	}

	return nil
}
