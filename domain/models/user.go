package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the local account behind a session. Collections and tasks only keep its id as a string.
type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	GoogleID  *string   `gorm:"size:255;index"` // สำหรับ Google OAuth (nullable)
	Email     string    `gorm:"uniqueIndex;not null"`
	Username  string    `gorm:"uniqueIndex;not null"`
	Password  string    // ว่างสำหรับ Google OAuth users
	FirstName string
	LastName  string
	Avatar    string
	Role      string `gorm:"default:'user'"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

// IsGoogleUser ตรวจสอบว่าเป็น user ที่ login ด้วย Google
func (u *User) IsGoogleUser() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

// Session builds the caller identity carried through service calls.
func (u *User) Session() *Session {
	return &Session{
		UserID:    u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
