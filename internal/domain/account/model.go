package account

import (
	"maps"
	"time"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// User is a console operator. HiddenColumns maps a screen name to the column
// keys the user has hidden on it.
type User struct {
	ID            string                     `json:"id"`
	FullName      string                     `json:"full_name"`
	Email         string                     `json:"email"`
	PasswordHash  string                     `json:"-"`
	Theme         Theme                      `json:"theme"`
	Notifications bool                       `json:"notifications"`
	HiddenColumns map[string]map[string]bool `json:"-"`
	CreatedAt     time.Time                  `json:"created_at"`
}

func (u *User) clone() *User {
	out := *u
	out.HiddenColumns = make(map[string]map[string]bool, len(u.HiddenColumns))
	for screen, keys := range u.HiddenColumns {
		out.HiddenColumns[screen] = maps.Clone(keys)
	}
	return &out
}

// Profile is what the header shows for the signed-in user.
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type Settings struct {
	Theme         Theme                      `json:"theme"`
	Notifications bool                       `json:"notifications"`
	HiddenColumns map[string]map[string]bool `json:"hidden_columns"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, FullName: u.FullName, Email: u.Email}
}

func (u *User) Settings() Settings {
	c := u.clone()
	return Settings{Theme: c.Theme, Notifications: c.Notifications, HiddenColumns: c.HiddenColumns}
}

// -- Requests --

type SignupRequest struct {
	FullName        string `json:"full_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type PasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type ThemeRequest struct {
	Theme Theme `json:"theme" validate:"required,oneof=light dark"`
}

type NotificationsRequest struct {
	Enabled *bool `json:"enabled"`
}
