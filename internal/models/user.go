package models

import "time"

// User is an account holder. The email doubles as the username.
type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	AgreeToMarketing bool      `json:"agree_to_marketing"`
	IsStaff          bool      `json:"is_staff"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProfileUpdate holds optional profile changes; nil fields are left untouched.
type ProfileUpdate struct {
	Name             *string
	AgreeToMarketing *bool
}

// Registration carries the fields needed to create an account.
type Registration struct {
	Email            string
	Name             string
	Password         string
	AgreeToMarketing bool
	IsStaff          bool
}
