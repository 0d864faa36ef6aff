package models

import "time"

const (
	SourceWalkIn   = "walk_in"
	SourceOnline   = "online"
	SourceReferral = "referral"
	SourceAgent    = "agent"
	SourceOther    = "other"
)

var CustomerSources = []string{SourceWalkIn, SourceOnline, SourceReferral, SourceAgent, SourceOther}

type Customer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Wechat    string    `db:"wechat" json:"wechat"`
	Email     string    `db:"email" json:"email"`
	Gender    string    `db:"gender" json:"gender"`
	IDCard    string    `db:"id_card" json:"idCard"`
	Source    string    `db:"source" json:"source"`
	Tags      string    `db:"tags" json:"tags"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	OrderCount int   `db:"-" json:"orderCount,omitempty"`
	TotalSpent int64 `db:"-" json:"totalSpent,omitempty"`
}

type CustomerFilter struct {
	Keyword  string
	Source   string
	Page     int
	PageSize int
}

func ValidSource(s string) bool {
	for _, v := range CustomerSources {
		if v == s {
			return true
		}
	}
	return false
}
