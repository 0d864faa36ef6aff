package repositories

import (
	"context"
	"strings"

	intdb "campbook/internal/db"
	"campbook/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var driverColumns = []string{
	"id", "name", "phone", "license_no", "status", textCol("notes", "notes"), "created_at", "updated_at",
}

type DriverRepository struct {
	DB *sqlx.DB
}

func (r DriverRepository) List(ctx context.Context, keyword, status string) ([]models.Driver, error) {
	q := intdb.Builder.Select(driverColumns...).From("drivers").OrderBy("id DESC")
	if kw := strings.TrimSpace(keyword); kw != "" {
		like := intdb.LikePattern(kw)
		q = q.Where(squirrel.Or{squirrel.Like{"name": like}, squirrel.Like{"phone": like}})
	}
	if status != "" {
		q = q.Where(squirrel.Eq{"status": status})
	}
	out := []models.Driver{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, q, "drivers.List")
	return out, err
}

func (r DriverRepository) GetByID(ctx context.Context, id int64) (models.Driver, error) {
	var d models.Driver
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &d,
		intdb.Builder.Select(driverColumns...).From("drivers").Where(squirrel.Eq{"id": id}), "drivers.GetByID")
	return d, err
}

func (r DriverRepository) Create(ctx context.Context, d *models.Driver) (int64, error) {
	return insertID(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Insert("drivers").
		Columns("name", "phone", "license_no", "status", "notes").
		Values(d.Name, d.Phone, d.LicenseNo, d.Status, d.Notes), "drivers.Create")
}

func (r DriverRepository) Update(ctx context.Context, d *models.Driver) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("drivers").
		Set("name", d.Name).
		Set("phone", d.Phone).
		Set("license_no", d.LicenseNo).
		Set("status", d.Status).
		Set("notes", d.Notes).
		Where(squirrel.Eq{"id": d.ID}), "drivers.Update")
}

func (r DriverRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Delete("drivers").Where(squirrel.Eq{"id": id}), "drivers.Delete")
}

func (r DriverRepository) CountShuttles(ctx context.Context, id int64) (int, error) {
	return countRows(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Select("COUNT(*)").From("shuttle_schedules").Where(squirrel.Eq{"driver_id": id}), "drivers.CountShuttles")
}
