package models

import "time"

const (
	VehicleAvailable   = "available"
	VehicleMaintenance = "maintenance"
	VehicleRetired     = "retired"
)

type Vehicle struct {
	ID          int64     `db:"id" json:"id"`
	PlateNumber string    `db:"plate_number" json:"plateNumber"`
	Model       string    `db:"model" json:"model"`
	Seats       int       `db:"seats" json:"seats"`
	Status      string    `db:"status" json:"status"`
	Notes       string    `db:"notes" json:"notes"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type Driver struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	LicenseNo string    `db:"license_no" json:"licenseNo"`
	Status    string    `db:"status" json:"status"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func ValidVehicleStatus(s string) bool {
	return s == VehicleAvailable || s == VehicleMaintenance || s == VehicleRetired
}
