package services

import (
	"context"
	"fmt"
	"strings"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/metrics"
	"campbook/internal/utils"
)

type ShuttleService struct {
	Shuttles  ShuttleStore
	Vehicles  VehicleStore
	Drivers   DriverStore
	Orders    OrderStore
	Tx        Transactor
	RequestID string
}

type ShuttleStopInput struct {
	Location       string  `json:"location"`
	ArrivalTime    *string `json:"arrivalTime"`
	PassengerCount int     `json:"passengerCount"`
	OrderID        *int64  `json:"orderId"`
	Notes          string  `json:"notes"`
}

type ShuttleInput struct {
	Name           string             `json:"name"`
	Date           string             `json:"date"`
	DepartureTime  string             `json:"departureTime"`
	ReturnTime     *string            `json:"returnTime"`
	VehicleID      *int64             `json:"vehicleId"`
	DriverID       *int64             `json:"driverId"`
	PassengerCount int                `json:"passengerCount"`
	Notes          string             `json:"notes"`
	Stops          []ShuttleStopInput `json:"stops"`
}

// ShuttleWindow is the blocking interval of a shuttle: departure to return, or a
// fixed window after departure when no return is planned.
func ShuttleWindow(departure string, ret *string) (domain.TimeRange, error) {
	dep, err := domain.ParseClock(departure)
	if err != nil {
		return domain.TimeRange{}, domain.ValidationError{Field: "departureTime", Msg: err.Error()}
	}
	if ret == nil || strings.TrimSpace(*ret) == "" {
		end, ok := dep.Add(models.DefaultShuttleWindowMinutes)
		if !ok {
			return domain.TimeRange{}, domain.ValidationError{
				Field: "returnTime",
				Msg:   fmt.Sprintf("is required when departure leaves less than %d minutes before midnight", models.DefaultShuttleWindowMinutes),
			}
		}
		return domain.TimeRange{Start: dep, End: end}, nil
	}
	return domain.NewTimeRange(departure, *ret)
}

func (s ShuttleService) List(ctx context.Context, f models.ShuttleFilter) ([]models.ShuttleSchedule, error) {
	for field, v := range map[string]string{"date": f.Date, "dateFrom": f.DateFrom, "dateTo": f.DateTo} {
		if v == "" {
			continue
		}
		if _, err := domain.ParseDate(v); err != nil {
			return nil, domain.ValidationError{Field: field, Msg: err.Error()}
		}
	}
	if f.Status != "" && !models.ValidShuttleStatus(f.Status) {
		return nil, domain.ValidationError{Field: "status", Msg: "unknown status " + f.Status}
	}
	list, err := s.Shuttles.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Stops, err = s.Shuttles.Stops(ctx, list[i].ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s ShuttleService) Get(ctx context.Context, id int64) (models.ShuttleSchedule, error) {
	sh, err := s.Shuttles.GetByID(ctx, id)
	if err != nil {
		return sh, notFound(err, "shuttle schedule")
	}
	if sh.Stops, err = s.Shuttles.Stops(ctx, id); err != nil {
		return sh, err
	}
	return sh, nil
}

func buildStops(in []ShuttleStopInput) ([]models.ShuttleStop, int, error) {
	stops := make([]models.ShuttleStop, 0, len(in))
	total := 0
	for i, st := range in {
		loc := utils.NormalizeSpace(st.Location)
		if loc == "" {
			return nil, 0, domain.ValidationError{Field: fmt.Sprintf("stops[%d].location", i), Msg: "is required"}
		}
		if st.PassengerCount < 0 {
			return nil, 0, domain.ValidationError{Field: fmt.Sprintf("stops[%d].passengerCount", i), Msg: "must not be negative"}
		}
		var arrival *string
		if st.ArrivalTime != nil && strings.TrimSpace(*st.ArrivalTime) != "" {
			c, err := domain.ParseClock(*st.ArrivalTime)
			if err != nil {
				return nil, 0, domain.ValidationError{Field: fmt.Sprintf("stops[%d].arrivalTime", i), Msg: err.Error()}
			}
			v := c.String()
			arrival = &v
		}
		stops = append(stops, models.ShuttleStop{
			Seq:            i + 1,
			Location:       loc,
			ArrivalTime:    arrival,
			PassengerCount: st.PassengerCount,
			OrderID:        positiveID(st.OrderID),
			Notes:          strings.TrimSpace(st.Notes),
		})
		total += st.PassengerCount
	}
	return stops, total, nil
}

// build validates the header, resolves vehicle and driver and checks capacity.
// Stops are returned only when the input carries them.
func (s ShuttleService) build(ctx context.Context, in ShuttleInput, status string) (models.ShuttleSchedule, []models.ShuttleStop, error) {
	sh := models.ShuttleSchedule{
		Name:           utils.NormalizeSpace(in.Name),
		Date:           strings.TrimSpace(in.Date),
		VehicleID:      positiveID(in.VehicleID),
		DriverID:       positiveID(in.DriverID),
		Status:         status,
		PassengerCount: in.PassengerCount,
		Notes:          strings.TrimSpace(in.Notes),
	}
	if sh.Name == "" {
		return sh, nil, required("name")
	}
	if _, err := domain.ParseDate(sh.Date); err != nil {
		return sh, nil, domain.ValidationError{Field: "date", Msg: err.Error()}
	}
	window, err := ShuttleWindow(in.DepartureTime, in.ReturnTime)
	if err != nil {
		return sh, nil, err
	}
	sh.DepartureTime = window.Start.String()
	if in.ReturnTime != nil && strings.TrimSpace(*in.ReturnTime) != "" {
		ret := window.End.String()
		sh.ReturnTime = &ret
	}

	var stops []models.ShuttleStop
	if in.Stops != nil {
		var total int
		if stops, total, err = buildStops(in.Stops); err != nil {
			return sh, nil, err
		}
		if len(stops) > 0 {
			sh.PassengerCount = total
		}
		for _, st := range stops {
			if st.OrderID == nil {
				continue
			}
			if _, err := s.Orders.GetByID(ctx, *st.OrderID); err != nil {
				return sh, nil, notFound(err, "order")
			}
		}
	}
	if sh.PassengerCount < 0 {
		return sh, nil, domain.ValidationError{Field: "passengerCount", Msg: "must not be negative"}
	}

	if sh.VehicleID != nil {
		v, err := s.Vehicles.GetByID(ctx, *sh.VehicleID)
		if err != nil {
			return sh, nil, notFound(err, "vehicle")
		}
		if v.Status != models.VehicleAvailable {
			return sh, nil, domain.ValidationError{Field: "vehicleId", Msg: "vehicle is " + v.Status}
		}
		if sh.PassengerCount > v.Seats {
			return sh, nil, domain.ValidationError{
				Field: "passengerCount",
				Msg:   fmt.Sprintf("%d passengers exceed the %d seats of %s", sh.PassengerCount, v.Seats, v.PlateNumber),
				Code:  domain.CodeCapacityExceeded,
			}
		}
	}
	if sh.DriverID != nil {
		d, err := s.Drivers.GetByID(ctx, *sh.DriverID)
		if err != nil {
			return sh, nil, notFound(err, "driver")
		}
		if d.Status != models.StaffActive {
			return sh, nil, domain.ValidationError{Field: "driverId", Msg: "driver is inactive"}
		}
	}
	return sh, stops, nil
}

// ensureNoConflicts rejects a vehicle or driver that is already out on an overlapping live shuttle.
func (s ShuttleService) ensureNoConflicts(ctx context.Context, sh models.ShuttleSchedule, selfID int64) error {
	if sh.Status == models.ShuttleCancelled {
		return nil
	}
	window, err := ShuttleWindow(sh.DepartureTime, sh.ReturnTime)
	if err != nil {
		return err
	}
	q := models.OverlapQuery{
		Date:      sh.Date,
		StartTime: window.Start.String(),
		EndTime:   window.End.String(),
		ExcludeID: selfID,
	}

	type resourceCheck struct {
		resource string
		id       *int64
		find     func(context.Context, models.OverlapQuery) ([]models.ShuttleSchedule, error)
	}
	for _, p := range []resourceCheck{
		{"vehicle", sh.VehicleID, s.Shuttles.FindVehicleOverlaps},
		{"driver", sh.DriverID, s.Shuttles.FindDriverOverlaps},
	} {
		if p.id == nil {
			continue
		}
		q.ResourceID = *p.id
		clash, err := p.find(ctx, q)
		if err != nil {
			return err
		}
		if len(clash) == 0 {
			continue
		}
		metrics.IncScheduleConflict(p.resource)
		first := clash[0]
		return domain.ConflictError{
			Resource: "shuttle schedule",
			Msg:      fmt.Sprintf("%s is already assigned to %q departing %s", p.resource, first.Name, first.DepartureTime),
			Code:     domain.CodeScheduleConflict,
			Details: map[string]any{
				"resource":             p.resource,
				"conflictingShuttleId": first.ID,
			},
		}
	}
	return nil
}

func (s ShuttleService) Create(ctx context.Context, in ShuttleInput) (models.ShuttleSchedule, error) {
	sh, stops, err := s.build(ctx, in, models.ShuttlePlanned)
	if err != nil {
		return sh, err
	}
	if err := s.ensureNoConflicts(ctx, sh, 0); err != nil {
		return sh, err
	}
	var id int64
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if id, err = s.Shuttles.Create(ctx, &sh); err != nil {
			return err
		}
		return s.Shuttles.ReplaceStops(ctx, id, stops)
	})
	if err != nil {
		return sh, mapRepoErr(err, "shuttle schedule", "", "")
	}
	utils.LogEvent(s.RequestID, "shuttle", "create", fmt.Sprintf("shuttle_id=%d date=%s dep=%s", id, sh.Date, sh.DepartureTime))
	return s.Get(ctx, id)
}

// Update rewrites the header. Stops are replaced only when the payload includes them.
func (s ShuttleService) Update(ctx context.Context, id int64, in ShuttleInput) (models.ShuttleSchedule, error) {
	cur, err := s.Shuttles.GetByID(ctx, id)
	if err != nil {
		return cur, notFound(err, "shuttle schedule")
	}
	if cur.Status == models.ShuttleCompleted || cur.Status == models.ShuttleCancelled {
		return cur, domain.ConflictError{Resource: "shuttle schedule", Msg: cur.Status + " shuttles cannot be edited", Code: domain.CodeInvalidStatus}
	}
	if in.Stops == nil && in.PassengerCount == 0 {
		in.PassengerCount = cur.PassengerCount
	}
	sh, stops, err := s.build(ctx, in, cur.Status)
	if err != nil {
		return sh, err
	}
	if err := s.ensureNoConflicts(ctx, sh, id); err != nil {
		return sh, err
	}
	sh.ID = id
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Shuttles.Update(ctx, &sh); err != nil {
			return err
		}
		if in.Stops == nil {
			return nil
		}
		return s.Shuttles.ReplaceStops(ctx, id, stops)
	})
	if err != nil {
		return sh, mapRepoErr(err, "shuttle schedule", "", "")
	}
	utils.LogEvent(s.RequestID, "shuttle", "update", fmt.Sprintf("shuttle_id=%d", id))
	return s.Get(ctx, id)
}

// ReplaceStops renumbers the stops 1..n and recomputes the passenger count.
func (s ShuttleService) ReplaceStops(ctx context.Context, id int64, in []ShuttleStopInput) (models.ShuttleSchedule, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return cur, err
	}
	if in == nil {
		in = []ShuttleStopInput{}
	}
	upd := ShuttleInput{
		Name:           cur.Name,
		Date:           cur.Date,
		DepartureTime:  cur.DepartureTime,
		ReturnTime:     cur.ReturnTime,
		VehicleID:      cur.VehicleID,
		DriverID:       cur.DriverID,
		PassengerCount: cur.PassengerCount,
		Notes:          cur.Notes,
		Stops:          in,
	}
	return s.Update(ctx, id, upd)
}

func (s ShuttleService) UpdateStatus(ctx context.Context, id int64, next string) (models.ShuttleSchedule, error) {
	next = strings.TrimSpace(next)
	if !models.ValidShuttleStatus(next) {
		return models.ShuttleSchedule{}, domain.ValidationError{Field: "status", Msg: "unknown status " + next}
	}
	sh, err := s.Shuttles.GetByID(ctx, id)
	if err != nil {
		return sh, notFound(err, "shuttle schedule")
	}
	if !sh.CanTransitionTo(next) {
		return sh, invalidStatus("shuttle schedule", sh.Status, next)
	}
	if err := s.Shuttles.UpdateStatus(ctx, id, next); err != nil {
		return sh, notFound(err, "shuttle schedule")
	}
	utils.LogEvent(s.RequestID, "shuttle", "status", fmt.Sprintf("shuttle_id=%d %s->%s", id, sh.Status, next))
	return s.Get(ctx, id)
}

func (s ShuttleService) Delete(ctx context.Context, id int64) error {
	if err := s.Shuttles.Delete(ctx, id); err != nil {
		return notFound(err, "shuttle schedule")
	}
	utils.LogEvent(s.RequestID, "shuttle", "delete", fmt.Sprintf("shuttle_id=%d", id))
	return nil
}
