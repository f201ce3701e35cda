package models

import "gorm.io/gorm"

// User represents a user in the system.
type User struct {
	gorm.Model
	Nickname          string `gorm:"size:255;unique;not null"`
	Email             string `gorm:"size:255;unique;not null"`
	DisplayName       string `gorm:"size:50"`
	Bio               string
	IsPrivate         bool `gorm:"not null;default:false"`
	ShowFollowerCount bool `gorm:"not null;default:true"`
}

// Name returns the display name, falling back to the nickname.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Nickname
}
