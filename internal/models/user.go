package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User roles
const (
	RoleStudent = "student"
	RoleGuest   = "guest"
	RoleAdmin   = "admin"
)

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	LoginID       string    `json:"login_id" gorm:"uniqueIndex;size:30"`
	Password      string    `json:"-"` // bcrypt hash, never serialized
	Name          string    `json:"name"`
	StudentNumber string    `json:"student_number" gorm:"uniqueIndex;size:20"` // assigned by the school portal
	Generation    int       `json:"generation"`
	Nickname      string    `json:"nickname" gorm:"uniqueIndex;size:30"`
	Birth         string    `json:"birth" gorm:"size:8"` // YYYYMMDD
	Role          string    `json:"role" gorm:"size:10;default:student"`
	Level         int       `json:"level" gorm:"default:1"`
	Exp           int       `json:"exp" gorm:"default:0"`
	Points        int       `json:"points" gorm:"default:0"`
	PostCount     int       `json:"post_count" gorm:"default:0"`
	CommentCount  int       `json:"comment_count" gorm:"default:0"`
	DeviceToken   string    `json:"-"` // FCM registration token, optional
	JoinedAt      time.Time `json:"joined_at" gorm:"autoCreateTime"`
}

// RegisterRequest defines the request body for account registration.
// School identity fields come from the preceding school-portal verification.
type RegisterRequest struct {
	LoginID       string `json:"login_id" validate:"required,min=4,max=30"`
	Password      string `json:"password" validate:"required,min=6"`
	Nickname      string `json:"nickname" validate:"required,min=2,max=30"`
	Birth         string `json:"birth" validate:"required,len=8,numeric"`
	Name          string `json:"name" validate:"required"`
	StudentNumber string `json:"student_number" validate:"required"`
	Generation    int    `json:"generation" validate:"required,min=1"`
}

// CheckRegisterRequest defines the request body for the live duplicate check
// run while the registration form is being filled in.
type CheckRegisterRequest struct {
	LoginID  string `json:"login_id"`
	Nickname string `json:"nickname"`
	Birth    string `json:"birth"`
}

// CheckPasswordRequest defines the request body for the live password check
// run while the registration form is being filled in.
type CheckPasswordRequest struct {
	Password        string `json:"pw"`
	PasswordConfirm string `json:"pw_check"`
}

// SignInRequest defines the request body for login
type SignInRequest struct {
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateDeviceTokenRequest registers the caller's push token
type UpdateDeviceTokenRequest struct {
	DeviceToken string `json:"device_token" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
