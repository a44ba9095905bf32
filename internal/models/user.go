package models

import "time"

type User struct {
	Id          int64          `json:"id"`
	Email       string         `json:"email"`
	Username    string         `json:"username"`
	Preferences map[string]any `json:"preferences,omitempty"`
	CreatedAt   time.Time      `json:"createdAt,omitempty"`
}

type NewUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Preferences is forwarded as-is to the server
type Preferences map[string]any
