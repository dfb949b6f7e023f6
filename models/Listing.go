package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Listing struct {
	gorm.Model
	CreatorID     uint           `json:"creatorID"`
	Category      string         `json:"category"`
	Type          string         `json:"type"` // entire_place, private_room, shared_room
	StreetAddress string         `json:"streetAddress"`
	AptSuite      string         `json:"aptSuite"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	Country       string         `json:"country"`
	GuestCount    int            `json:"guestCount" gorm:"default:1"`
	BedroomCount  int            `json:"bedroomCount" gorm:"default:1"`
	BedCount      int            `json:"bedCount" gorm:"default:1"`
	BathroomCount int            `json:"bathroomCount" gorm:"default:1"`
	Amenities     datatypes.JSON `json:"amenities"`
	PhotoURLs     datatypes.JSON `json:"listingPhotoPaths"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Highlight     string         `json:"highlight"`
	HighlightDesc string         `json:"highlightDesc"`
	Price         float64        `json:"price"`
	Creator       User           `json:"creator" gorm:"foreignKey:CreatorID;references:ID"`
}

// Custom JSON marshaling so amenities and photo URLs render as string arrays.
func (l *Listing) MarshalJSON() ([]byte, error) {
	type Alias Listing
	aux := &struct {
		Amenities []string `json:"amenities"`
		PhotoURLs []string `json:"listingPhotoPaths"`
		*Alias
	}{
		Amenities: []string{},
		PhotoURLs: []string{},
		Alias:     (*Alias)(l),
	}

	if l.Amenities != nil {
		var amenities []string
		if err := json.Unmarshal(l.Amenities, &amenities); err == nil {
			aux.Amenities = amenities
		}
	}

	if l.PhotoURLs != nil {
		var photoURLs []string
		if err := json.Unmarshal(l.PhotoURLs, &photoURLs); err == nil {
			aux.PhotoURLs = photoURLs
		}
	}

	return json.Marshal(aux)
}
