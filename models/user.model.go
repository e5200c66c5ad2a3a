package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	Name            string `gorm:"not null" json:"name"`
	Email           string `gorm:"unique;not null" json:"email"`
	Password        string `gorm:"not null" json:"-"`
	Avatar          string `gorm:"default:''" json:"avatar"`
	AvatarPublicID  string `gorm:"default:''" json:"avatar_public_id"`
	Role            string `gorm:"default:'STUDENT'" json:"role"` // STUDENT, TEACHER, ADMIN
	IsApproved      bool   `gorm:"default:false" json:"is_approved"`
	IsEmailVerified bool   `gorm:"default:false" json:"is_email_verified"`
	IsDeleted       bool   `gorm:"default:false" json:"-"`
}

// BeforeCreate derives the approval flag from the role: teachers wait for
// admin approval, students and admins are approved immediately.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleStudent
	}
	u.IsApproved = u.Role != RoleTeacher
	return nil
}
