package models

import "time"

const (
	ShuttlePlanned   = "planned"
	ShuttleDeparted  = "departed"
	ShuttleCompleted = "completed"
	ShuttleCancelled = "cancelled"

	// DefaultShuttleWindowMinutes is the blocking window when no return time is set.
	DefaultShuttleWindowMinutes = 60
)

var shuttleTransitions = map[string][]string{
	ShuttlePlanned:  {ShuttleDeparted, ShuttleCancelled},
	ShuttleDeparted: {ShuttleCompleted},
}

// ShuttleSchedule is one transport batch: a vehicle, a driver and an ordered list of stops.
type ShuttleSchedule struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Date           string    `db:"shuttle_date" json:"date"`
	DepartureTime  string    `db:"departure_time" json:"departureTime"`
	ReturnTime     *string   `db:"return_time" json:"returnTime"`
	VehicleID      *int64    `db:"vehicle_id" json:"vehicleId"`
	DriverID       *int64    `db:"driver_id" json:"driverId"`
	Status         string    `db:"status" json:"status"`
	PassengerCount int       `db:"passenger_count" json:"passengerCount"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`

	VehiclePlate string        `db:"vehicle_plate" json:"vehiclePlate,omitempty"`
	DriverName   string        `db:"driver_name" json:"driverName,omitempty"`
	Stops        []ShuttleStop `db:"-" json:"stops"`
}

type ShuttleStop struct {
	ID                int64   `db:"id" json:"id"`
	ShuttleScheduleID int64   `db:"shuttle_schedule_id" json:"shuttleScheduleId"`
	Seq               int     `db:"seq" json:"seq"`
	Location          string  `db:"location" json:"location"`
	ArrivalTime       *string `db:"arrival_time" json:"arrivalTime"`
	PassengerCount    int     `db:"passenger_count" json:"passengerCount"`
	OrderID           *int64  `db:"order_id" json:"orderId"`
	Notes             string  `db:"notes" json:"notes"`
}

type ShuttleFilter struct {
	Date      string
	DateFrom  string
	DateTo    string
	VehicleID int64
	DriverID  int64
	Status    string
}

func (s *ShuttleSchedule) CanTransitionTo(next string) bool {
	for _, st := range shuttleTransitions[s.Status] {
		if st == next {
			return true
		}
	}
	return false
}

func ValidShuttleStatus(s string) bool {
	switch s {
	case ShuttlePlanned, ShuttleDeparted, ShuttleCompleted, ShuttleCancelled:
		return true
	}
	return false
}
