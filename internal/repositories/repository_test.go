package repositories

import (
	"context"
	"errors"
	"testing"

	intdb "campbook/internal/db"
	"campbook/internal/domain"
	"campbook/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "mysql"), mock
}

func TestCustomerList_Paginates(t *testing.T) {
	db, mock := newMock(t)
	repo := CustomerRepository{DB: db}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers WHERE`).
		WithArgs("%ali%", "%ali%", "%ali%", "online").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectQuery(`SELECT id, name, phone.* FROM customers WHERE .* ORDER BY id DESC LIMIT 20 OFFSET 20`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "source"}).
			AddRow(3, "Alice", "13800000001", "online").
			AddRow(2, "Alina", "13800000002", "online"))

	page, err := repo.List(context.Background(), models.CustomerFilter{Keyword: " ali ", Source: "online", Page: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "Alice", page.Items[0].Name)
	assert.Equal(t, 41, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerGetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := CustomerRepository{DB: db}

	mock.ExpectQuery(`FROM customers WHERE id = \?`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerCreate_DuplicatePhone(t *testing.T) {
	db, mock := newMock(t)
	repo := CustomerRepository{DB: db}

	mock.ExpectExec(`INSERT INTO customers`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Create(context.Background(), &models.Customer{Name: "Bob", Phone: "13800000000"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCustomerDelete_ReferencedByOrders(t *testing.T) {
	db, mock := newMock(t)
	repo := CustomerRepository{DB: db}

	mock.ExpectExec(`DELETE FROM customers WHERE id = \?`).
		WithArgs(int64(5)).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

	err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInUse)
}

func TestVehicleUpdate_MissingRow(t *testing.T) {
	db, mock := newMock(t)
	repo := VehicleRepository{DB: db}

	mock.ExpectExec(`UPDATE vehicles SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Vehicle{ID: 8, PlateNumber: "A-123"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleFindCoachOverlaps_Query(t *testing.T) {
	db, mock := newMock(t)
	repo := ScheduleRepository{DB: db}

	mock.ExpectQuery(`FROM schedules s .* WHERE s\.coach_id = \? AND s\.schedule_date = \? AND s\.status <> \? AND s\.start_time < \? AND s\.end_time > \? AND s\.id <> \?`).
		WithArgs(int64(4), "2025-06-01", models.ScheduleCancelled, "11:00", "10:00", int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "end_time", "coach_name"}).
			AddRow(12, "10:30", "11:30", "Chen"))

	got, err := repo.FindCoachOverlaps(context.Background(), models.OverlapQuery{
		ResourceID: 4, Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00", ExcludeID: 9,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(12), got[0].ID)
	assert.Equal(t, "Chen", got[0].CoachName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShuttleFindVehicleOverlaps_UsesDefaultWindow(t *testing.T) {
	db, mock := newMock(t)
	repo := ShuttleRepository{DB: db}

	mock.ExpectQuery(`sh\.vehicle_id = \? .* COALESCE\(sh\.return_time, ADDTIME\(sh\.departure_time, '01:00:00'\)\) > \?`).
		WithArgs("2025-06-01", int64(3), models.ShuttleCancelled, "09:00", "08:00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "departure_time"}))

	got, err := repo.FindVehicleOverlaps(context.Background(), models.OverlapQuery{
		ResourceID: 3, Date: "2025-06-01", StartTime: "08:00", EndTime: "09:00",
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPackageReplaceProjects_InTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := PackageRepository{DB: db}
	tx := intdb.NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM package_projects WHERE package_id = \?`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO package_projects \(package_id,project_id\) VALUES \(\?,\?\),\(\?,\?\)`).
		WithArgs(int64(2), int64(7), int64(2), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		return repo.ReplaceProjects(ctx, 2, []int64{7, 8})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderReplaceItems_RollsBackOnFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := OrderRepository{DB: db}
	tx := intdb.NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM order_items`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_items`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		return repo.ReplaceItems(ctx, 1, []models.OrderItem{{Name: "Archery", UnitPrice: 5000, Quantity: 2, Subtotal: 10000}})
	})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderAddPayment_IncrementsInPlace(t *testing.T) {
	db, mock := newMock(t)
	repo := OrderRepository{DB: db}

	mock.ExpectExec(`UPDATE orders SET payment_status = CASE WHEN paid_amount \+ \? >= total_amount THEN \? ELSE \? END, `+
		`paid_amount = paid_amount \+ \? WHERE id = \? AND status <> \? AND paid_amount \+ \? <= total_amount`).
		WithArgs(int64(5000), domain.PaymentPaid, domain.PaymentPartial, int64(5000), int64(7), models.OrderCancelled, int64(5000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.AddPayment(context.Background(), 7, 5000))

	mock.ExpectExec(`UPDATE orders SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.AddPayment(context.Background(), 7, 5000), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderList_JoinsCustomer(t *testing.T) {
	db, mock := newMock(t)
	repo := OrderRepository{DB: db}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders o LEFT JOIN customers c ON c\.id = o\.customer_id WHERE \(o\.status = \?\)`).
		WithArgs(models.OrderPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM orders o LEFT JOIN customers c .* ORDER BY o\.id DESC LIMIT 20 OFFSET 0`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_no", "status", "customer_name"}).
			AddRow(1, "CB20250601ABCDEF", models.OrderPending, "Alice"))

	page, err := repo.List(context.Background(), models.OrderFilter{Status: models.OrderPending})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Alice", page.Items[0].CustomerName)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestStatsDashboard(t *testing.T) {
	db, mock := newMock(t)
	repo := StatsRepository{DB: db}

	for _, n := range []int{120, 6, 3, 40, 9, 2} {
		mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(n))
	}
	mock.ExpectQuery(`SUM\(paid_amount\)`).
		WithArgs("2025-06-01", "2025-06-15", models.OrderCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(int64(1250000)))

	st, err := repo.Dashboard(context.Background(), "2025-06-15", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 120, st.CustomerCount)
	assert.Equal(t, 6, st.OrdersToday)
	assert.Equal(t, 3, st.PendingOrders)
	assert.Equal(t, 40, st.ParticipantsToday)
	assert.Equal(t, 9, st.SchedulesToday)
	assert.Equal(t, 2, st.ShuttlesToday)
	assert.Equal(t, int64(1250000), st.RevenueThisMonth)
	assert.NoError(t, mock.ExpectationsWereMet())
}
