package repositories

import (
	"context"
	"time"

	intdb "campbook/internal/db"
	"campbook/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var userColumns = []string{
	"id", "username", "name", "phone", "password_hash", "role", "status", "last_login_at", "created_at", "updated_at",
}

type UserRepository struct {
	DB *sqlx.DB
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &u,
		intdb.Builder.Select(userColumns...).From("users").Where(squirrel.Eq{"id": id}), "users.GetByID")
	return u, err
}

func (r UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &u,
		intdb.Builder.Select(userColumns...).From("users").Where(squirrel.Eq{"username": username}).Limit(1), "users.GetByUsername")
	return u, err
}

func (r UserRepository) List(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out,
		intdb.Builder.Select(userColumns...).From("users").OrderBy("id ASC"), "users.List")
	return out, err
}

func (r UserRepository) Create(ctx context.Context, u *models.User) (int64, error) {
	return insertID(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Insert("users").
		Columns("username", "name", "phone", "password_hash", "role", "status").
		Values(u.Username, u.Name, u.Phone, u.PasswordHash, u.Role, u.Status), "users.Create")
}

func (r UserRepository) Update(ctx context.Context, u *models.User) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("users").
		Set("name", u.Name).
		Set("phone", u.Phone).
		Set("role", u.Role).
		Set("status", u.Status).
		Where(squirrel.Eq{"id": u.ID}), "users.Update")
}

func (r UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("users").
		Set("password_hash", hash).
		Where(squirrel.Eq{"id": id}), "users.UpdatePassword")
}

func (r UserRepository) TouchLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := execStmt(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("users").
		Set("last_login_at", at).
		Where(squirrel.Eq{"id": id}), "users.TouchLogin")
	return err
}

func (r UserRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Delete("users").Where(squirrel.Eq{"id": id}), "users.Delete")
}

func (r UserRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Select("COUNT(*)").From("users"), "users.Count")
}
