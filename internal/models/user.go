package models

import (
	"strings"
	"time"
)

// User is a local-mode identity record (email+password accounts handled
// in-process instead of by Firebase).
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !strings.Contains(r.Email, "@") {
		errors["email"] = "Email is invalid"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	} else if len(r.Password) < 6 {
		errors["password"] = "Password must be at least 6 characters"
	}
	if r.DisplayName == "" {
		errors["displayName"] = "Display name is required"
	}

	return errors
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}
