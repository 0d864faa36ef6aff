package repositories

import (
	"context"

	intdb "campbook/internal/db"
	"campbook/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var accommodationColumns = []string{
	"id", "name", "type", "capacity", "price_per_night", "is_active", textCol("notes", "notes"), "created_at", "updated_at",
}

type AccommodationRepository struct {
	DB *sqlx.DB
}

func (r AccommodationRepository) List(ctx context.Context, activeOnly bool) ([]models.AccommodationPlace, error) {
	q := intdb.Builder.Select(accommodationColumns...).From("accommodation_places").OrderBy("id ASC")
	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	out := []models.AccommodationPlace{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, q, "accommodations.List")
	return out, err
}

func (r AccommodationRepository) GetByID(ctx context.Context, id int64) (models.AccommodationPlace, error) {
	var a models.AccommodationPlace
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &a,
		intdb.Builder.Select(accommodationColumns...).From("accommodation_places").Where(squirrel.Eq{"id": id}), "accommodations.GetByID")
	return a, err
}

func (r AccommodationRepository) Create(ctx context.Context, a *models.AccommodationPlace) (int64, error) {
	return insertID(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Insert("accommodation_places").
		Columns("name", "type", "capacity", "price_per_night", "is_active", "notes").
		Values(a.Name, a.Type, a.Capacity, a.PricePerNight, a.IsActive, a.Notes), "accommodations.Create")
}

func (r AccommodationRepository) Update(ctx context.Context, a *models.AccommodationPlace) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("accommodation_places").
		Set("name", a.Name).
		Set("type", a.Type).
		Set("capacity", a.Capacity).
		Set("price_per_night", a.PricePerNight).
		Set("is_active", a.IsActive).
		Set("notes", a.Notes).
		Where(squirrel.Eq{"id": a.ID}), "accommodations.Update")
}

func (r AccommodationRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Delete("accommodation_places").Where(squirrel.Eq{"id": id}), "accommodations.Delete")
}

func (r AccommodationRepository) CountOrders(ctx context.Context, id int64) (int, error) {
	return countRows(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Select("COUNT(*)").From("orders").Where(squirrel.Eq{"accommodation_place_id": id}), "accommodations.CountOrders")
}
