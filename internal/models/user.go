package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GoogleID    string         `gorm:"uniqueIndex" json:"-"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string         `gorm:"size:255" json:"displayName"`
	AvatarURL   string         `json:"avatarUrl,omitempty"`
	Timezone    string         `gorm:"default:'UTC'" json:"timezone"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Areas     []Area     `gorm:"foreignKey:UserID" json:"-"`
	Reminders []Reminder `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
