package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/user/dayboard/backend/internal/models"
	"gorm.io/gorm"
)

type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(reminder *models.Reminder) error {
	return r.db.Create(reminder).Error
}

func (r *ReminderRepository) FindByID(id uuid.UUID) (*models.Reminder, error) {
	var reminder models.Reminder
	err := r.db.Where("id = ?", id).First(&reminder).Error
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *ReminderRepository) FindByIDAndUser(id, userID uuid.UUID) (*models.Reminder, error) {
	var reminder models.Reminder
	err := r.db.Where("id = ? AND user_id = ?", id, userID).Preload("Area").First(&reminder).Error
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

// ListByUser returns all of a user's reminders, newest first, with the owning
// area preloaded so responses can carry the area label.
func (r *ReminderRepository) ListByUser(userID uuid.UUID) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Area").
		Find(&reminders).Error
	return reminders, err
}

func (r *ReminderRepository) Update(reminder *models.Reminder) error {
	return r.db.Save(reminder).Error
}

func (r *ReminderRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Reminder{}, id).Error
}

// Toggle flips a reminder between pending and done, keeping completed_at in
// lockstep with the status. The next status is computed here, not by the
// caller, so concurrent clients converge on the server's answer.
func (r *ReminderRepository) Toggle(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var reminder models.Reminder
		if err := tx.Where("id = ?", id).First(&reminder).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if reminder.Status == models.StatusDone {
			updates["status"] = models.StatusPending
			updates["completed_at"] = nil
		} else {
			updates["status"] = models.StatusDone
			updates["completed_at"] = time.Now()
		}

		return tx.Model(&models.Reminder{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *ReminderRepository) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reminder{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *ReminderRepository) DeleteByUserID(userID uuid.UUID) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Reminder{}).Error
}
