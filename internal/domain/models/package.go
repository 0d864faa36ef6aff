package models

import "time"

// Package is a priced bundle of projects sold to customers.
type Package struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       int64     `db:"price" json:"price"`
	ChildPrice  int64     `db:"child_price" json:"childPrice"`
	Days        int       `db:"days" json:"days"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	ProjectIDs []int64   `db:"-" json:"projectIds"`
	Projects   []Project `db:"-" json:"projects,omitempty"`
}

// PriceFor returns the per-head price, children falling back to the adult price.
func (p *Package) PriceFor(child bool) int64 {
	if child && p.ChildPrice > 0 {
		return p.ChildPrice
	}
	return p.Price
}
