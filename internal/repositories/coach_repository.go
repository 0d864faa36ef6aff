package repositories

import (
	"context"
	"strings"

	intdb "campbook/internal/db"
	"campbook/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var coachColumns = []string{
	"id", "name", "phone", "specialties", "status", textCol("notes", "notes"), "created_at", "updated_at",
}

type CoachRepository struct {
	DB *sqlx.DB
}

func (r CoachRepository) List(ctx context.Context, keyword, status string) ([]models.Coach, error) {
	q := intdb.Builder.Select(coachColumns...).From("coaches").OrderBy("id ASC")
	if kw := strings.TrimSpace(keyword); kw != "" {
		like := intdb.LikePattern(kw)
		q = q.Where(squirrel.Or{squirrel.Like{"name": like}, squirrel.Like{"phone": like}})
	}
	if status != "" {
		q = q.Where(squirrel.Eq{"status": status})
	}
	out := []models.Coach{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, q, "coaches.List")
	return out, err
}

func (r CoachRepository) GetByID(ctx context.Context, id int64) (models.Coach, error) {
	var c models.Coach
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &c,
		intdb.Builder.Select(coachColumns...).From("coaches").Where(squirrel.Eq{"id": id}), "coaches.GetByID")
	return c, err
}

func (r CoachRepository) Create(ctx context.Context, c *models.Coach) (int64, error) {
	return insertID(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Insert("coaches").
		Columns("name", "phone", "specialties", "status", "notes").
		Values(c.Name, c.Phone, c.Specialties, c.Status, c.Notes), "coaches.Create")
}

func (r CoachRepository) Update(ctx context.Context, c *models.Coach) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("coaches").
		Set("name", c.Name).
		Set("phone", c.Phone).
		Set("specialties", c.Specialties).
		Set("status", c.Status).
		Set("notes", c.Notes).
		Where(squirrel.Eq{"id": c.ID}), "coaches.Update")
}

func (r CoachRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Delete("coaches").Where(squirrel.Eq{"id": id}), "coaches.Delete")
}

// CountUpcomingSchedules counts live schedules of the coach from fromDate onwards.
func (r CoachRepository) CountUpcomingSchedules(ctx context.Context, id int64, fromDate string) (int, error) {
	return countRows(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Select("COUNT(*)").From("schedules").
		Where(squirrel.Eq{"coach_id": id}).
		Where(squirrel.GtOrEq{"schedule_date": fromDate}).
		Where(squirrel.NotEq{"status": models.ScheduleCancelled}), "coaches.CountUpcomingSchedules")
}
