package models

import "time"

// Project is an on-site activity that can be scheduled on the timeline.
type Project struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Category        string    `db:"category" json:"category"`
	Description     string    `db:"description" json:"description"`
	DurationMinutes int       `db:"duration_minutes" json:"durationMinutes"`
	Capacity        int       `db:"capacity" json:"capacity"`
	Price           int64     `db:"price" json:"price"`
	ImageURL        string    `db:"image_url" json:"imageUrl"`
	IsActive        bool      `db:"is_active" json:"isActive"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

type ProjectFilter struct {
	Keyword    string
	Category   string
	ActiveOnly bool
}
