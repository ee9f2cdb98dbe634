package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                    uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username              string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email                 string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash          string    `json:"-" gorm:"not null"`
	RefreshToken          string    `json:"-" gorm:"not null"`
	RefreshTokenExpiresAt time.Time `json:"-"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`

	Tasks []Task `json:"-" gorm:"foreignKey:UserID"`
}
