package repositories

import (
	"context"

	intdb "campbook/internal/db"
	"campbook/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var packageColumns = []string{
	"id", "name", textCol("description", "description"), "price", "child_price", "days",
	"image_url", "is_active", "created_at", "updated_at",
}

type PackageRepository struct {
	DB *sqlx.DB
}

// List loads packages together with their project ids.
func (r PackageRepository) List(ctx context.Context, activeOnly bool) ([]models.Package, error) {
	q := intdb.Builder.Select(packageColumns...).From("packages").OrderBy("id ASC")
	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	out := []models.Package{}
	if err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, q, "packages.List"); err != nil {
		return nil, err
	}
	if err := r.attachProjectIDs(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r PackageRepository) GetByID(ctx context.Context, id int64) (models.Package, error) {
	var p models.Package
	if err := getOne(ctx, intdb.Executor(ctx, r.DB), &p,
		intdb.Builder.Select(packageColumns...).From("packages").Where(squirrel.Eq{"id": id}), "packages.GetByID"); err != nil {
		return p, err
	}
	list := []models.Package{p}
	if err := r.attachProjectIDs(ctx, list); err != nil {
		return p, err
	}
	return list[0], nil
}

func (r PackageRepository) attachProjectIDs(ctx context.Context, pkgs []models.Package) error {
	if len(pkgs) == 0 {
		return nil
	}
	ids := make([]int64, len(pkgs))
	for i := range pkgs {
		ids[i] = pkgs[i].ID
		pkgs[i].ProjectIDs = []int64{}
	}

	var links []struct {
		PackageID int64 `db:"package_id"`
		ProjectID int64 `db:"project_id"`
	}
	if err := selectAll(ctx, intdb.Executor(ctx, r.DB), &links, intdb.Builder.
		Select("package_id", "project_id").
		From("package_projects").
		Where(squirrel.Eq{"package_id": ids}).
		OrderBy("package_id ASC", "project_id ASC"), "packages.attachProjectIDs"); err != nil {
		return err
	}

	byID := make(map[int64]int, len(pkgs))
	for i := range pkgs {
		byID[pkgs[i].ID] = i
	}
	for _, l := range links {
		if i, ok := byID[l.PackageID]; ok {
			pkgs[i].ProjectIDs = append(pkgs[i].ProjectIDs, l.ProjectID)
		}
	}
	return nil
}

func (r PackageRepository) Create(ctx context.Context, p *models.Package) (int64, error) {
	return insertID(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Insert("packages").
		Columns("name", "description", "price", "child_price", "days", "image_url", "is_active").
		Values(p.Name, p.Description, p.Price, p.ChildPrice, p.Days, p.ImageURL, p.IsActive), "packages.Create")
}

func (r PackageRepository) Update(ctx context.Context, p *models.Package) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("packages").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("child_price", p.ChildPrice).
		Set("days", p.Days).
		Set("image_url", p.ImageURL).
		Set("is_active", p.IsActive).
		Where(squirrel.Eq{"id": p.ID}), "packages.Update")
}

// ReplaceProjects rewrites the package/project links. Call inside a transaction.
func (r PackageRepository) ReplaceProjects(ctx context.Context, packageID int64, projectIDs []int64) error {
	exec := intdb.Executor(ctx, r.DB)
	if _, err := execStmt(ctx, exec, intdb.Builder.Delete("package_projects").
		Where(squirrel.Eq{"package_id": packageID}), "packages.ReplaceProjects.delete"); err != nil {
		return err
	}
	if len(projectIDs) == 0 {
		return nil
	}
	ins := intdb.Builder.Insert("package_projects").Columns("package_id", "project_id")
	for _, pid := range projectIDs {
		ins = ins.Values(packageID, pid)
	}
	_, err := execStmt(ctx, exec, ins, "packages.ReplaceProjects.insert")
	return err
}

func (r PackageRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Delete("packages").Where(squirrel.Eq{"id": id}), "packages.Delete")
}

func (r PackageRepository) CountOrderItems(ctx context.Context, id int64) (int, error) {
	return countRows(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Select("COUNT(*)").From("order_items").Where(squirrel.Eq{"package_id": id}), "packages.CountOrderItems")
}
