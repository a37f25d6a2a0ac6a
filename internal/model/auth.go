// Package model defines the DTO shapes exchanged with the remote LIOMS API.
package model

import "time"

// Credentials is the login request body.
type Credentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// TokenPair is returned by Login and Refresh.
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpireDate   time.Time `json:"expireDate"`
}

// RefreshRequest carries the current pair to the refresh endpoint.
type RefreshRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Known role names as issued by the server.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleViewer  = "Viewer"
)

// UserProfile is the authenticated identity returned by accounts/me.
type UserProfile struct {
	ID           int64    `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	IsActive     bool     `json:"isActive"`
	CreatedAt    string   `json:"createdAt"`
	DeletedAt    *string  `json:"deletedAt"`
	Roles        []string `json:"roles"`
	Companies    []string `json:"companies"`
	PrivacyLevel *string  `json:"privacyLevel"`
}

// HasRole reports whether the profile carries the given role.
func (u *UserProfile) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
