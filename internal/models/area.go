package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultAreaName is the area assigned to reminders created without one.
const DefaultAreaName = "general"

// Area is a user-defined category grouping reminders (e.g., "work", "health").
// Names are stored trimmed and lowercased, unique per user.
type Area struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_areas_user_name" json:"userId"`
	Name      string         `gorm:"size:100;not null;uniqueIndex:idx_areas_user_name" json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Reminders []Reminder `gorm:"foreignKey:AreaID" json:"-"`
}

func (a *Area) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
