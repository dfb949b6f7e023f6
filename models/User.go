package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FullName  string         `json:"fullName"`
	Username  string         `json:"username" gorm:"uniqueIndex"`
	Email     string         `json:"email" gorm:"uniqueIndex"`
	Password  string         `json:"-"`
	AvatarURL string         `json:"avatarURL"`
	Wishlist  datatypes.JSON `json:"wishlist"`

	Properties []Listing `json:"properties,omitempty" gorm:"foreignKey:CreatorID;references:ID"`
}

// Custom JSON marshaling so the wishlist column renders as a plain ID array
// instead of raw JSON bytes.
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Wishlist []uint `json:"wishlist"`
		*Alias
	}{
		Wishlist: []uint{},
		Alias:    (*Alias)(u),
	}

	if u.Wishlist != nil {
		var wishlist []uint
		if err := json.Unmarshal(u.Wishlist, &wishlist); err == nil {
			aux.Wishlist = wishlist
		}
	}

	return json.Marshal(aux)
}
