package repositories

import (
	"context"
	"strings"

	intdb "campbook/internal/db"
	"campbook/internal/domain"
	"campbook/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var customerColumns = []string{
	"id", "name", "phone", "wechat", "email", "gender", "id_card", "source", "tags",
	textCol("notes", "notes"), "created_at", "updated_at",
}

type CustomerRepository struct {
	DB *sqlx.DB
}

func customerWhere(f models.CustomerFilter) squirrel.And {
	where := squirrel.And{}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		like := intdb.LikePattern(kw)
		where = append(where, squirrel.Or{
			squirrel.Like{"name": like},
			squirrel.Like{"phone": like},
			squirrel.Like{"wechat": like},
		})
	}
	if f.Source != "" {
		where = append(where, squirrel.Eq{"source": f.Source})
	}
	return where
}

// List returns one page of customers, newest first.
func (r CustomerRepository) List(ctx context.Context, f models.CustomerFilter) (domain.Page[models.Customer], error) {
	exec := intdb.Executor(ctx, r.DB)
	where := customerWhere(f)

	total, err := countRows(ctx, exec, intdb.Builder.Select("COUNT(*)").From("customers").Where(where), "customers.List.count")
	if err != nil {
		return domain.Page[models.Customer]{}, err
	}

	q, page, size := paginate(intdb.Builder.Select(customerColumns...).From("customers").Where(where).OrderBy("id DESC"), f.Page, f.PageSize)
	out := []models.Customer{}
	if err := selectAll(ctx, exec, &out, q, "customers.List"); err != nil {
		return domain.Page[models.Customer]{}, err
	}
	return pageOf(out, total, page, size), nil
}

// All returns every customer matching the filter without paging, for exports.
func (r CustomerRepository) All(ctx context.Context, f models.CustomerFilter) ([]models.Customer, error) {
	out := []models.Customer{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out,
		intdb.Builder.Select(customerColumns...).From("customers").Where(customerWhere(f)).OrderBy("id ASC"), "customers.All")
	return out, err
}

func (r CustomerRepository) GetByID(ctx context.Context, id int64) (models.Customer, error) {
	var c models.Customer
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &c,
		intdb.Builder.Select(customerColumns...).From("customers").Where(squirrel.Eq{"id": id}), "customers.GetByID")
	return c, err
}

func (r CustomerRepository) GetByPhone(ctx context.Context, phone string) (models.Customer, error) {
	var c models.Customer
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &c,
		intdb.Builder.Select(customerColumns...).From("customers").Where(squirrel.Eq{"phone": phone}).Limit(1), "customers.GetByPhone")
	return c, err
}

func (r CustomerRepository) Create(ctx context.Context, c *models.Customer) (int64, error) {
	return insertID(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Insert("customers").
		Columns("name", "phone", "wechat", "email", "gender", "id_card", "source", "tags", "notes").
		Values(c.Name, c.Phone, c.Wechat, c.Email, c.Gender, c.IDCard, c.Source, c.Tags, c.Notes), "customers.Create")
}

func (r CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("customers").
		Set("name", c.Name).
		Set("phone", c.Phone).
		Set("wechat", c.Wechat).
		Set("email", c.Email).
		Set("gender", c.Gender).
		Set("id_card", c.IDCard).
		Set("source", c.Source).
		Set("tags", c.Tags).
		Set("notes", c.Notes).
		Where(squirrel.Eq{"id": c.ID}), "customers.Update")
}

func (r CustomerRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Delete("customers").Where(squirrel.Eq{"id": id}), "customers.Delete")
}

// OrderStats returns how many orders the customer has and the sum paid over non-cancelled ones.
func (r CustomerRepository) OrderStats(ctx context.Context, id int64) (int, int64, error) {
	var row struct {
		Count int   `db:"order_count"`
		Spent int64 `db:"total_spent"`
	}
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &row, intdb.Builder.
		Select(
			"COUNT(*) AS order_count",
			"COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN paid_amount ELSE 0 END), 0) AS total_spent",
		).
		From("orders").
		Where(squirrel.Eq{"customer_id": id}), "customers.OrderStats")
	return row.Count, row.Spent, err
}

func (r CustomerRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Select("COUNT(*)").From("customers"), "customers.Count")
}
