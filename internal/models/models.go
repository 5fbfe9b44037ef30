package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"       json:"id"`
	UUID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	Email        string    `gorm:"uniqueIndex;not null"           json:"email"`
	Username     string    `gorm:"uniqueIndex;not null"           json:"username"`
	PasswordHash string    `gorm:"not null"                       json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false"         json:"is_admin"`
	IsActive     bool      `gorm:"not null;default:true"          json:"is_active"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// UUID is assigned once at insert and never rewritten.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UUID == uuid.Nil {
		u.UUID = uuid.New()
	}
	return nil
}
