package repositories

import (
	"context"
	"fmt"

	intdb "campbook/internal/db"
	"campbook/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var shuttleColumns = []string{
	"sh.id", "sh.name", dateCol("sh.shuttle_date", "shuttle_date"), clockCol("sh.departure_time", "departure_time"),
	clockCol("sh.return_time", "return_time"), "sh.vehicle_id", "sh.driver_id", "sh.status", "sh.passenger_count",
	textCol("sh.notes", "notes"), "sh.created_at", "sh.updated_at",
	textCol("v.plate_number", "vehicle_plate"), textCol("d.name", "driver_name"),
}

var stopColumns = []string{
	"id", "shuttle_schedule_id", "seq", "location", clockCol("arrival_time", "arrival_time"),
	"passenger_count", "order_id", "notes",
}

// shuttleEnd is the end of the blocking window: the return time, or a fixed
// window after departure when no return is planned.
var shuttleEnd = fmt.Sprintf("COALESCE(sh.return_time, ADDTIME(sh.departure_time, '%02d:%02d:00'))",
	models.DefaultShuttleWindowMinutes/60, models.DefaultShuttleWindowMinutes%60)

type ShuttleRepository struct {
	DB *sqlx.DB
}

func shuttleSelect() squirrel.SelectBuilder {
	return intdb.Builder.Select(shuttleColumns...).
		From("shuttle_schedules sh").
		LeftJoin("vehicles v ON v.id = sh.vehicle_id").
		LeftJoin("drivers d ON d.id = sh.driver_id")
}

func (r ShuttleRepository) List(ctx context.Context, f models.ShuttleFilter) ([]models.ShuttleSchedule, error) {
	q := shuttleSelect().OrderBy("sh.shuttle_date ASC", "sh.departure_time ASC", "sh.id ASC")
	if f.Date != "" {
		q = q.Where(squirrel.Eq{"sh.shuttle_date": f.Date})
	}
	if f.DateFrom != "" {
		q = q.Where(squirrel.GtOrEq{"sh.shuttle_date": f.DateFrom})
	}
	if f.DateTo != "" {
		q = q.Where(squirrel.LtOrEq{"sh.shuttle_date": f.DateTo})
	}
	if f.VehicleID > 0 {
		q = q.Where(squirrel.Eq{"sh.vehicle_id": f.VehicleID})
	}
	if f.DriverID > 0 {
		q = q.Where(squirrel.Eq{"sh.driver_id": f.DriverID})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"sh.status": f.Status})
	}
	out := []models.ShuttleSchedule{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, q, "shuttles.List")
	return out, err
}

func (r ShuttleRepository) GetByID(ctx context.Context, id int64) (models.ShuttleSchedule, error) {
	var s models.ShuttleSchedule
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &s, shuttleSelect().Where(squirrel.Eq{"sh.id": id}), "shuttles.GetByID")
	return s, err
}

func (r ShuttleRepository) Stops(ctx context.Context, shuttleID int64) ([]models.ShuttleStop, error) {
	out := []models.ShuttleStop{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, intdb.Builder.Select(stopColumns...).
		From("shuttle_stops").
		Where(squirrel.Eq{"shuttle_schedule_id": shuttleID}).
		OrderBy("seq ASC", "id ASC"), "shuttles.Stops")
	return out, err
}

func (r ShuttleRepository) findOverlaps(ctx context.Context, column string, q models.OverlapQuery, op string) ([]models.ShuttleSchedule, error) {
	b := shuttleSelect().
		Where(squirrel.Eq{column: q.ResourceID, "sh.shuttle_date": q.Date}).
		Where(squirrel.NotEq{"sh.status": models.ShuttleCancelled}).
		Where(squirrel.Lt{"sh.departure_time": q.EndTime}).
		Where(squirrel.Expr(shuttleEnd+" > ?", q.StartTime)).
		OrderBy("sh.departure_time ASC")
	if q.ExcludeID > 0 {
		b = b.Where(squirrel.NotEq{"sh.id": q.ExcludeID})
	}
	out := []models.ShuttleSchedule{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, b, op)
	return out, err
}

func (r ShuttleRepository) FindVehicleOverlaps(ctx context.Context, q models.OverlapQuery) ([]models.ShuttleSchedule, error) {
	return r.findOverlaps(ctx, "sh.vehicle_id", q, "shuttles.FindVehicleOverlaps")
}

func (r ShuttleRepository) FindDriverOverlaps(ctx context.Context, q models.OverlapQuery) ([]models.ShuttleSchedule, error) {
	return r.findOverlaps(ctx, "sh.driver_id", q, "shuttles.FindDriverOverlaps")
}

func (r ShuttleRepository) Create(ctx context.Context, s *models.ShuttleSchedule) (int64, error) {
	return insertID(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Insert("shuttle_schedules").
		Columns("name", "shuttle_date", "departure_time", "return_time", "vehicle_id", "driver_id", "status", "passenger_count", "notes").
		Values(s.Name, s.Date, s.DepartureTime, s.ReturnTime, s.VehicleID, s.DriverID, s.Status, s.PassengerCount, s.Notes), "shuttles.Create")
}

func (r ShuttleRepository) Update(ctx context.Context, s *models.ShuttleSchedule) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("shuttle_schedules").
		Set("name", s.Name).
		Set("shuttle_date", s.Date).
		Set("departure_time", s.DepartureTime).
		Set("return_time", s.ReturnTime).
		Set("vehicle_id", s.VehicleID).
		Set("driver_id", s.DriverID).
		Set("status", s.Status).
		Set("passenger_count", s.PassengerCount).
		Set("notes", s.Notes).
		Where(squirrel.Eq{"id": s.ID}), "shuttles.Update")
}

func (r ShuttleRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("shuttle_schedules").
		Set("status", status).
		Where(squirrel.Eq{"id": id}), "shuttles.UpdateStatus")
}

// ReplaceStops rewrites the stop list in the given order. Call inside a transaction.
func (r ShuttleRepository) ReplaceStops(ctx context.Context, shuttleID int64, stops []models.ShuttleStop) error {
	exec := intdb.Executor(ctx, r.DB)
	if _, err := execStmt(ctx, exec, intdb.Builder.Delete("shuttle_stops").
		Where(squirrel.Eq{"shuttle_schedule_id": shuttleID}), "shuttles.ReplaceStops.delete"); err != nil {
		return err
	}
	if len(stops) == 0 {
		return nil
	}
	ins := intdb.Builder.Insert("shuttle_stops").
		Columns("shuttle_schedule_id", "seq", "location", "arrival_time", "passenger_count", "order_id", "notes")
	for _, st := range stops {
		ins = ins.Values(shuttleID, st.Seq, st.Location, st.ArrivalTime, st.PassengerCount, st.OrderID, st.Notes)
	}
	_, err := execStmt(ctx, exec, ins, "shuttles.ReplaceStops.insert")
	return err
}

func (r ShuttleRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Delete("shuttle_schedules").Where(squirrel.Eq{"id": id}), "shuttles.Delete")
}
