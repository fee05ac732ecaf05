package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.StandardClaims
}

type Session struct {
	UserID       string
	RefreshToken string
	ExpiresAt    time.Time
}
