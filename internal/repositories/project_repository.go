package repositories

import (
	"context"
	"strings"

	intdb "campbook/internal/db"
	"campbook/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var projectColumns = []string{
	"id", "name", "category", textCol("description", "description"), "duration_minutes", "capacity",
	"price", "image_url", "is_active", "created_at", "updated_at",
}

type ProjectRepository struct {
	DB *sqlx.DB
}

func (r ProjectRepository) List(ctx context.Context, f models.ProjectFilter) ([]models.Project, error) {
	q := intdb.Builder.Select(projectColumns...).From("projects").OrderBy("id ASC")
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		q = q.Where(squirrel.Like{"name": intdb.LikePattern(kw)})
	}
	if f.Category != "" {
		q = q.Where(squirrel.Eq{"category": f.Category})
	}
	if f.ActiveOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	out := []models.Project{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, q, "projects.List")
	return out, err
}

func (r ProjectRepository) GetByID(ctx context.Context, id int64) (models.Project, error) {
	var p models.Project
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &p,
		intdb.Builder.Select(projectColumns...).From("projects").Where(squirrel.Eq{"id": id}), "projects.GetByID")
	return p, err
}

func (r ProjectRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Project, error) {
	out := []models.Project{}
	if len(ids) == 0 {
		return out, nil
	}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out,
		intdb.Builder.Select(projectColumns...).From("projects").Where(squirrel.Eq{"id": ids}).OrderBy("id ASC"), "projects.GetByIDs")
	return out, err
}

func (r ProjectRepository) Create(ctx context.Context, p *models.Project) (int64, error) {
	return insertID(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Insert("projects").
		Columns("name", "category", "description", "duration_minutes", "capacity", "price", "image_url", "is_active").
		Values(p.Name, p.Category, p.Description, p.DurationMinutes, p.Capacity, p.Price, p.ImageURL, p.IsActive), "projects.Create")
}

func (r ProjectRepository) Update(ctx context.Context, p *models.Project) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("projects").
		Set("name", p.Name).
		Set("category", p.Category).
		Set("description", p.Description).
		Set("duration_minutes", p.DurationMinutes).
		Set("capacity", p.Capacity).
		Set("price", p.Price).
		Set("image_url", p.ImageURL).
		Set("is_active", p.IsActive).
		Where(squirrel.Eq{"id": p.ID}), "projects.Update")
}

func (r ProjectRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Delete("projects").Where(squirrel.Eq{"id": id}), "projects.Delete")
}

// CountSchedules counts schedules of any status that reference the project.
func (r ProjectRepository) CountSchedules(ctx context.Context, id int64) (int, error) {
	return countRows(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Select("COUNT(*)").From("schedules").Where(squirrel.Eq{"project_id": id}), "projects.CountSchedules")
}
