package models

import "time"

const (
	RoleStudent    = "Student"
	RoleInstructor = "Instructor"
	RoleRegistrar  = "Registrar"
	RoleAdmin      = "Admin"
)

// DefaultRoles are seeded on migration; the service never creates roles itself.
var DefaultRoles = []string{RoleStudent, RoleInstructor, RoleRegistrar, RoleAdmin}

type Role struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName string `gorm:"uniqueIndex;not null"     json:"role_name"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName     string    `gorm:"not null"                 json:"full_name"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	RoleID       uint      `gorm:"not null;index"           json:"role_id"`
	Role         Role      `gorm:"foreignKey:RoleID"        json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
