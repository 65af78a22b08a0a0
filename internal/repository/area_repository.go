package repository

import (
	"strings"

	"github.com/google/uuid"
	"github.com/user/dayboard/backend/internal/models"
	"gorm.io/gorm"
)

type AreaRepository struct {
	db *gorm.DB
}

func NewAreaRepository(db *gorm.DB) *AreaRepository {
	return &AreaRepository{db: db}
}

func (r *AreaRepository) Create(area *models.Area) error {
	return r.db.Create(area).Error
}

func (r *AreaRepository) FindByID(id uuid.UUID) (*models.Area, error) {
	var area models.Area
	err := r.db.Where("id = ?", id).First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *AreaRepository) FindByIDAndUser(id, userID uuid.UUID) (*models.Area, error) {
	var area models.Area
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *AreaRepository) ListByUser(userID uuid.UUID) ([]models.Area, error) {
	var areas []models.Area
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&areas).Error
	return areas, err
}

// FindOrCreate resolves an area by (user, name), creating it when missing.
// Names are trimmed and lowercased before the lookup so repeated submissions
// of "Work" and "work " land on the same row.
func (r *AreaRepository) FindOrCreate(userID uuid.UUID, name string) (*models.Area, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var area models.Area
	err := r.db.
		Where(models.Area{UserID: userID, Name: name}).
		FirstOrCreate(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

// EnsureDefaultAreaExists resolves the user's "general" area, creating it on
// first use. Reminders created without an area are assigned to it.
func (r *AreaRepository) EnsureDefaultAreaExists(userID uuid.UUID) (*models.Area, error) {
	return r.FindOrCreate(userID, models.DefaultAreaName)
}

func (r *AreaRepository) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Area{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *AreaRepository) DeleteByUserID(userID uuid.UUID) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Area{}).Error
}
