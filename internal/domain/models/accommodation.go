package models

import "time"

var AccommodationTypes = []string{"room", "tent", "cabin", "other"}

type AccommodationPlace struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Type          string    `db:"type" json:"type"`
	Capacity      int       `db:"capacity" json:"capacity"`
	PricePerNight int64     `db:"price_per_night" json:"pricePerNight"`
	IsActive      bool      `db:"is_active" json:"isActive"`
	Notes         string    `db:"notes" json:"notes"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

func ValidAccommodationType(t string) bool {
	for _, v := range AccommodationTypes {
		if v == t {
			return true
		}
	}
	return false
}
