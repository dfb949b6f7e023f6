package models

import (
	"gorm.io/gorm"
)

// Booking links a customer, a host and a listing over a date range. Dates are
// stored as the client sent them; the record is written once and never
// updated or cancelled.
type Booking struct {
	gorm.Model
	CustomerID uint    `json:"customerID"`
	HostID     uint    `json:"hostID"`
	ListingID  uint    `json:"listingID"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	TotalPrice float64 `json:"totalPrice"`
	Customer   User    `json:"customer" gorm:"foreignKey:CustomerID;references:ID"`
	Host       User    `json:"host" gorm:"foreignKey:HostID;references:ID"`
	Listing    Listing `json:"listing" gorm:"foreignKey:ListingID;references:ID"`
}
