package repositories

import (
	"context"
	"strings"

	intdb "campbook/internal/db"
	"campbook/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var vehicleColumns = []string{
	"id", "plate_number", "model", "seats", "status", textCol("notes", "notes"), "created_at", "updated_at",
}

type VehicleRepository struct {
	DB *sqlx.DB
}

// List is filtered by q on plate number or model, like the fleet screen search box.
func (r VehicleRepository) List(ctx context.Context, keyword, status string) ([]models.Vehicle, error) {
	q := intdb.Builder.Select(vehicleColumns...).From("vehicles").OrderBy("id DESC")
	if kw := strings.TrimSpace(keyword); kw != "" {
		like := intdb.LikePattern(kw)
		q = q.Where(squirrel.Or{squirrel.Like{"plate_number": like}, squirrel.Like{"model": like}})
	}
	if status != "" {
		q = q.Where(squirrel.Eq{"status": status})
	}
	out := []models.Vehicle{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, q, "vehicles.List")
	return out, err
}

func (r VehicleRepository) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	var v models.Vehicle
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &v,
		intdb.Builder.Select(vehicleColumns...).From("vehicles").Where(squirrel.Eq{"id": id}), "vehicles.GetByID")
	return v, err
}

func (r VehicleRepository) Create(ctx context.Context, v *models.Vehicle) (int64, error) {
	return insertID(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Insert("vehicles").
		Columns("plate_number", "model", "seats", "status", "notes").
		Values(v.PlateNumber, v.Model, v.Seats, v.Status, v.Notes), "vehicles.Create")
}

func (r VehicleRepository) Update(ctx context.Context, v *models.Vehicle) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("vehicles").
		Set("plate_number", v.PlateNumber).
		Set("model", v.Model).
		Set("seats", v.Seats).
		Set("status", v.Status).
		Set("notes", v.Notes).
		Where(squirrel.Eq{"id": v.ID}), "vehicles.Update")
}

func (r VehicleRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Delete("vehicles").Where(squirrel.Eq{"id": id}), "vehicles.Delete")
}

func (r VehicleRepository) CountShuttles(ctx context.Context, id int64) (int, error) {
	return countRows(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Select("COUNT(*)").From("shuttle_schedules").Where(squirrel.Eq{"vehicle_id": id}), "vehicles.CountShuttles")
}
