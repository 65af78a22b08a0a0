package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/user/dayboard/backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByGoogleID(googleID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("google_id = ?", googleID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.User{}, id).Error
}

// FindOrCreate looks up a user by Google ID, creating one on first sign-in.
// A soft-deleted account signing back in is restored instead of duplicated.
// Returns the user and whether it was newly created.
func (r *UserRepository) FindOrCreate(googleID, email, displayName, avatarURL string) (*models.User, bool, error) {
	var user models.User
	err := r.db.Where("google_id = ?", googleID).First(&user).Error
	if err == nil {
		// User exists, update their info
		user.Email = email
		user.DisplayName = displayName
		user.AvatarURL = avatarURL
		if err := r.db.Save(&user).Error; err != nil {
			return nil, false, err
		}
		return &user, false, nil
	}

	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	// Check for soft-deleted user with same Google ID
	err = r.db.Unscoped().Where("google_id = ? AND deleted_at IS NOT NULL", googleID).First(&user).Error
	if err == nil {
		if err := r.db.Unscoped().Model(&user).Updates(map[string]interface{}{
			"deleted_at":   nil,
			"email":        email,
			"display_name": displayName,
			"avatar_url":   avatarURL,
		}).Error; err != nil {
			return nil, false, err
		}
		return &user, false, nil
	}

	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	user = models.User{
		GoogleID:    googleID,
		Email:       email,
		DisplayName: displayName,
		AvatarURL:   avatarURL,
	}
	if err := r.db.Create(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

// SoftDelete marks the account deleted; the purge job removes it for good
// after the grace period.
func (r *UserRepository) SoftDelete(id uuid.UUID) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}
