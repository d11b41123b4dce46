package models

import (
	"errors"
	"strings"
	"time"
)

type Hotel struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	CostPerNight   float64   `json:"costPerNight"`
	AvailableRooms int       `json:"availableRooms"`
	Image          string    `json:"image"`
	AverageRating  float64   `json:"averageRating"`
	UserID         string    `json:"userId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HotelWithOwner is the read model for single-hotel fetches; owner fields
// come from the referenced user record.
type HotelWithOwner struct {
	Hotel
	OwnerName  string `json:"ownerName"`
	OwnerEmail string `json:"ownerEmail"`
}

func (h *Hotel) Validate() error {
	if strings.TrimSpace(h.Name) == "" || strings.TrimSpace(h.Address) == "" ||
		strings.TrimSpace(h.Image) == "" || strings.TrimSpace(h.UserID) == "" {
		return errors.New("missing required fields")
	}
	if h.CostPerNight < 0 {
		return errors.New("costPerNight must be >= 0")
	}
	if h.AvailableRooms < 0 {
		return errors.New("availableRooms must be >= 0")
	}
	if h.AverageRating < 0 || h.AverageRating > 5 {
		return errors.New("averageRating must be between 0 and 5")
	}
	return nil
}
