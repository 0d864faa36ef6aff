package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intdb "campbook/internal/db"
	"campbook/internal/domain"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

func getOne(ctx context.Context, q sqlx.QueryerContext, dest any, b squirrel.Sqlizer, op string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBuildQuery, op, err)
	}
	if err := sqlx.GetContext(ctx, q, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %s: %v", ErrScanRow, op, err)
	}
	return nil
}

func selectAll(ctx context.Context, q sqlx.QueryerContext, dest any, b squirrel.Sqlizer, op string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBuildQuery, op, err)
	}
	if err := sqlx.SelectContext(ctx, q, dest, query, args...); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScanRow, op, err)
	}
	return nil
}

func countRows(ctx context.Context, q sqlx.QueryerContext, b squirrel.SelectBuilder, op string) (int, error) {
	var n int
	if err := getOne(ctx, q, &n, b, op); err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

func execStmt(ctx context.Context, e sqlx.ExecerContext, b squirrel.Sqlizer, op string) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBuildQuery, op, err)
	}
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case intdb.IsDuplicateKey(err):
			return nil, fmt.Errorf("%w: %s: %v", ErrDuplicate, op, err)
		case intdb.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: %s: %v", ErrInUse, op, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
	return res, nil
}

func insertID(ctx context.Context, e sqlx.ExecerContext, b squirrel.InsertBuilder, op string) (int64, error) {
	res, err := execStmt(ctx, e, b, op)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: last insert id: %v", ErrExecQuery, op, err)
	}
	return id, nil
}

// execAffectingOne turns "0 rows affected" into ErrNotFound. The DSN sets clientFoundRows
// so unchanged rows still count.
func execAffectingOne(ctx context.Context, e sqlx.ExecerContext, b squirrel.Sqlizer, op string) error {
	res, err := execStmt(ctx, e, b, op)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s: rows affected: %v", ErrExecQuery, op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// paginate applies LIMIT/OFFSET after clamping the page input.
func paginate(b squirrel.SelectBuilder, page, pageSize int) (squirrel.SelectBuilder, int, int) {
	page, pageSize, offset := intdb.NormalizePage(page, pageSize)
	return b.Limit(uint64(pageSize)).Offset(offset), page, pageSize
}

func dateCol(expr, alias string) string {
	return "DATE_FORMAT(" + expr + ", '%Y-%m-%d') AS " + alias
}

func clockCol(expr, alias string) string {
	return "TIME_FORMAT(" + expr + ", '%H:%i') AS " + alias
}

func textCol(expr, alias string) string {
	return "COALESCE(" + expr + ", '') AS " + alias
}

func pageOf[T any](items []T, total, page, size int) domain.Page[T] {
	return domain.Page[T]{Items: items, Pagination: domain.NewPagination(page, size, total)}
}
