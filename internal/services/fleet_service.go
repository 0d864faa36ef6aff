package services

import (
	"context"
	"fmt"
	"strings"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/utils"
)

// FleetService manages vehicles and drivers used by shuttle schedules.
type FleetService struct {
	Vehicles  VehicleStore
	Drivers   DriverStore
	RequestID string
}

type VehicleInput struct {
	PlateNumber string `json:"plateNumber"`
	Model       string `json:"model"`
	Seats       int    `json:"seats"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

type DriverInput struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	LicenseNo string `json:"licenseNo"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

func (in VehicleInput) toModel() (models.Vehicle, error) {
	v := models.Vehicle{
		PlateNumber: strings.ToUpper(strings.Join(strings.Fields(in.PlateNumber), "")),
		Model:       utils.NormalizeSpace(in.Model),
		Seats:       in.Seats,
		Status:      strings.ToLower(strings.TrimSpace(in.Status)),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if v.PlateNumber == "" {
		return v, required("plateNumber")
	}
	if v.Seats < 1 {
		return v, domain.ValidationError{Field: "seats", Msg: "must be at least 1"}
	}
	if v.Status == "" {
		v.Status = models.VehicleAvailable
	}
	if !models.ValidVehicleStatus(v.Status) {
		return v, domain.ValidationError{Field: "status", Msg: "must be available, maintenance or retired"}
	}
	return v, nil
}

func (in DriverInput) toModel() (models.Driver, error) {
	d := models.Driver{
		Name:      utils.NormalizeSpace(in.Name),
		Phone:     utils.NormalizePhone(in.Phone),
		LicenseNo: strings.TrimSpace(in.LicenseNo),
		Status:    strings.ToLower(strings.TrimSpace(in.Status)),
		Notes:     strings.TrimSpace(in.Notes),
	}
	if d.Name == "" {
		return d, required("name")
	}
	if d.Phone == "" {
		return d, required("phone")
	}
	if !utils.ValidPhone(d.Phone) {
		return d, domain.ValidationError{Field: "phone", Msg: "must be 6 to 20 digits"}
	}
	if d.Status == "" {
		d.Status = models.StaffActive
	}
	if d.Status != models.StaffActive && d.Status != models.StaffInactive {
		return d, domain.ValidationError{Field: "status", Msg: "must be active or inactive"}
	}
	return d, nil
}

func (s FleetService) ListVehicles(ctx context.Context, keyword, status string) ([]models.Vehicle, error) {
	return s.Vehicles.List(ctx, keyword, status)
}

func (s FleetService) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	v, err := s.Vehicles.GetByID(ctx, id)
	return v, notFound(err, "vehicle")
}

func (s FleetService) CreateVehicle(ctx context.Context, in VehicleInput) (models.Vehicle, error) {
	v, err := in.toModel()
	if err != nil {
		return v, err
	}
	id, err := s.Vehicles.Create(ctx, &v)
	if err != nil {
		return v, mapRepoErr(err, "vehicle", domain.CodeDuplicatePlate, "")
	}
	utils.LogEvent(s.RequestID, "vehicles", "create", fmt.Sprintf("vehicle_id=%d plate=%s", id, v.PlateNumber))
	return s.GetVehicle(ctx, id)
}

func (s FleetService) UpdateVehicle(ctx context.Context, id int64, in VehicleInput) (models.Vehicle, error) {
	if _, err := s.Vehicles.GetByID(ctx, id); err != nil {
		return models.Vehicle{}, notFound(err, "vehicle")
	}
	v, err := in.toModel()
	if err != nil {
		return v, err
	}
	v.ID = id
	if err := s.Vehicles.Update(ctx, &v); err != nil {
		return v, mapRepoErr(err, "vehicle", domain.CodeDuplicatePlate, "")
	}
	utils.LogEvent(s.RequestID, "vehicles", "update", fmt.Sprintf("vehicle_id=%d", id))
	return s.GetVehicle(ctx, id)
}

func (s FleetService) DeleteVehicle(ctx context.Context, id int64) error {
	if _, err := s.Vehicles.GetByID(ctx, id); err != nil {
		return notFound(err, "vehicle")
	}
	n, err := s.Vehicles.CountShuttles(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return inUse("vehicle", domain.CodeVehicleInUse, n)
	}
	if err := s.Vehicles.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "vehicle", "", domain.CodeVehicleInUse)
	}
	utils.LogEvent(s.RequestID, "vehicles", "delete", fmt.Sprintf("vehicle_id=%d", id))
	return nil
}

func (s FleetService) ListDrivers(ctx context.Context, keyword, status string) ([]models.Driver, error) {
	return s.Drivers.List(ctx, keyword, status)
}

func (s FleetService) GetDriver(ctx context.Context, id int64) (models.Driver, error) {
	d, err := s.Drivers.GetByID(ctx, id)
	return d, notFound(err, "driver")
}

func (s FleetService) CreateDriver(ctx context.Context, in DriverInput) (models.Driver, error) {
	d, err := in.toModel()
	if err != nil {
		return d, err
	}
	id, err := s.Drivers.Create(ctx, &d)
	if err != nil {
		return d, mapRepoErr(err, "driver", domain.CodeDuplicatePhone, "")
	}
	utils.LogEvent(s.RequestID, "drivers", "create", fmt.Sprintf("driver_id=%d", id))
	return s.GetDriver(ctx, id)
}

func (s FleetService) UpdateDriver(ctx context.Context, id int64, in DriverInput) (models.Driver, error) {
	if _, err := s.Drivers.GetByID(ctx, id); err != nil {
		return models.Driver{}, notFound(err, "driver")
	}
	d, err := in.toModel()
	if err != nil {
		return d, err
	}
	d.ID = id
	if err := s.Drivers.Update(ctx, &d); err != nil {
		return d, mapRepoErr(err, "driver", domain.CodeDuplicatePhone, "")
	}
	utils.LogEvent(s.RequestID, "drivers", "update", fmt.Sprintf("driver_id=%d", id))
	return s.GetDriver(ctx, id)
}

func (s FleetService) DeleteDriver(ctx context.Context, id int64) error {
	if _, err := s.Drivers.GetByID(ctx, id); err != nil {
		return notFound(err, "driver")
	}
	n, err := s.Drivers.CountShuttles(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return inUse("driver", domain.CodeDriverInUse, n)
	}
	if err := s.Drivers.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "driver", "", domain.CodeDriverInUse)
	}
	utils.LogEvent(s.RequestID, "drivers", "delete", fmt.Sprintf("driver_id=%d", id))
	return nil
}
