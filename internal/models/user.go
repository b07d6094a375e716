package models

import (
	"fmt"
	"strings"
)

// MaxDisplayNameLen bounds profile display names.
const MaxDisplayNameLen = 100

// MaxBioLen bounds profile bios.
const MaxBioLen = 500

// User represents a jukebox account backed by a Spotify identity.
//
// The stored refresh token allows the server to mint user-scoped access
// tokens after the OAuth session cookie is established.
type User struct {
	entity
	spotifyID    string
	displayName  string
	email        string
	bio          string
	avatarURL    string
	refreshToken string
}

// NewUser creates a User for the given Spotify identity.
func NewUser(sequence int, spotifyID, displayName, email string) *User {
	return &User{
		entity:      newEntity(sequence),
		spotifyID:   spotifyID,
		displayName: displayName,
		email:       email,
	}
}

func (u *User) SpotifyID() string    { return u.spotifyID }
func (u *User) DisplayName() string  { return u.displayName }
func (u *User) Email() string        { return u.email }
func (u *User) Bio() string          { return u.bio }
func (u *User) AvatarURL() string    { return u.avatarURL }
func (u *User) RefreshToken() string { return u.refreshToken }

func (u *User) SetDisplayName(name string)   { u.displayName = name }
func (u *User) SetEmail(email string)        { u.email = email }
func (u *User) SetBio(bio string)            { u.bio = bio }
func (u *User) SetAvatarURL(url string)      { u.avatarURL = url }
func (u *User) SetRefreshToken(token string) { u.refreshToken = token }

// Validate checks the user's data.
func (u *User) Validate() error {
	if strings.TrimSpace(u.spotifyID) == "" {
		return fmt.Errorf("spotify id is required")
	}
	if strings.TrimSpace(u.displayName) == "" {
		return fmt.Errorf("display name is required")
	}
	if len(u.displayName) > MaxDisplayNameLen {
		return fmt.Errorf("display name exceeds %d characters", MaxDisplayNameLen)
	}
	if len(u.bio) > MaxBioLen {
		return fmt.Errorf("bio exceeds %d characters", MaxBioLen)
	}
	return nil
}
