// Package model holds the GORM persistence models. They mirror the tables created
// by the embedded migrations and never leave the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are UUIDv7 assigned by the repository.
// Uniqueness of email is enforced by the ux_users_email index on lower(email).
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(320);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FullName     string    `gorm:"type:varchar(200);not null"`
	Role         string    `gorm:"type:varchar(32);not null;default:User"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
