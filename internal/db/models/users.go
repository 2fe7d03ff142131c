package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// User represents a user in the system. Tasks and needs reference users as
// owner, reporter or uploader; all of those references are optional.
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"not null; unique"`
	Email    string `json:"email" gorm:""`
}

// MarshalJSON implements the json.Marshaler interface for User
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User // Create an alias to avoid infinite recursion
	return json.Marshal(Alias(u))
}

// Validate ensures that the user data is valid
func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new user
func (u *User) BeforeCreate(_ *gorm.DB) error {
	return u.Validate()
}
