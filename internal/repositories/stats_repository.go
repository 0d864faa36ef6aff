package repositories

import (
	"context"

	intdb "campbook/internal/db"
	"campbook/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// StatsRepository runs the aggregate queries behind the dashboard.
type StatsRepository struct {
	DB *sqlx.DB
}

// Dashboard collects headline counters for date. monthStart is the first day of date's month.
func (r StatsRepository) Dashboard(ctx context.Context, date, monthStart string) (models.DashboardStats, error) {
	exec := intdb.Executor(ctx, r.DB)
	st := models.DashboardStats{Date: date}
	var err error

	if st.CustomerCount, err = countRows(ctx, exec,
		intdb.Builder.Select("COUNT(*)").From("customers"), "stats.customers"); err != nil {
		return st, err
	}
	if st.OrdersToday, err = countRows(ctx, exec, intdb.Builder.Select("COUNT(*)").From("orders").
		Where(squirrel.Eq{"visit_date": date}).
		Where(squirrel.NotEq{"status": models.OrderCancelled}), "stats.ordersToday"); err != nil {
		return st, err
	}
	if st.PendingOrders, err = countRows(ctx, exec, intdb.Builder.Select("COUNT(*)").From("orders").
		Where(squirrel.Eq{"status": models.OrderPending}), "stats.pendingOrders"); err != nil {
		return st, err
	}
	if st.ParticipantsToday, err = countRows(ctx, exec, intdb.Builder.
		Select("COALESCE(SUM(adult_count + child_count), 0)").From("orders").
		Where(squirrel.Eq{"visit_date": date}).
		Where(squirrel.NotEq{"status": models.OrderCancelled}), "stats.participantsToday"); err != nil {
		return st, err
	}
	if st.SchedulesToday, err = countRows(ctx, exec, intdb.Builder.Select("COUNT(*)").From("schedules").
		Where(squirrel.Eq{"schedule_date": date}).
		Where(squirrel.NotEq{"status": models.ScheduleCancelled}), "stats.schedulesToday"); err != nil {
		return st, err
	}
	if st.ShuttlesToday, err = countRows(ctx, exec, intdb.Builder.Select("COUNT(*)").From("shuttle_schedules").
		Where(squirrel.Eq{"shuttle_date": date}).
		Where(squirrel.NotEq{"status": models.ShuttleCancelled}), "stats.shuttlesToday"); err != nil {
		return st, err
	}

	var revenue int64
	if err := getOne(ctx, exec, &revenue, intdb.Builder.Select("COALESCE(SUM(paid_amount), 0)").From("orders").
		Where(squirrel.GtOrEq{"visit_date": monthStart}).
		Where(squirrel.LtOrEq{"visit_date": date}).
		Where(squirrel.NotEq{"status": models.OrderCancelled}), "stats.revenue"); err != nil {
		return st, err
	}
	st.RevenueThisMonth = revenue
	return st, nil
}
