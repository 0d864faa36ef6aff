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

var orderColumns = []string{
	"o.id", "o.order_no", "o.customer_id", "o.status", "o.source", dateCol("o.visit_date", "visit_date"),
	"o.adult_count", "o.child_count", "o.total_amount", "o.discount", "o.paid_amount", "o.payment_status",
	textCol("o.notes", "notes"), "o.accommodation_place_id", "o.created_by", "o.created_at", "o.updated_at",
	textCol("c.name", "customer_name"), textCol("c.phone", "customer_phone"),
}

var orderItemColumns = []string{
	"id", "order_id", "package_id", "project_id", "name", "unit_price", "quantity", "subtotal",
}

type OrderRepository struct {
	DB *sqlx.DB
}

func orderSelect() squirrel.SelectBuilder {
	return intdb.Builder.Select(orderColumns...).
		From("orders o").
		LeftJoin("customers c ON c.id = o.customer_id")
}

func orderWhere(f models.OrderFilter) squirrel.And {
	where := squirrel.And{}
	if f.Status != "" {
		where = append(where, squirrel.Eq{"o.status": f.Status})
	}
	if f.CustomerID > 0 {
		where = append(where, squirrel.Eq{"o.customer_id": f.CustomerID})
	}
	if f.DateFrom != "" {
		where = append(where, squirrel.GtOrEq{"o.visit_date": f.DateFrom})
	}
	if f.DateTo != "" {
		where = append(where, squirrel.LtOrEq{"o.visit_date": f.DateTo})
	}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		like := intdb.LikePattern(kw)
		where = append(where, squirrel.Or{
			squirrel.Like{"o.order_no": like},
			squirrel.Like{"c.name": like},
			squirrel.Like{"c.phone": like},
		})
	}
	return where
}

func (r OrderRepository) List(ctx context.Context, f models.OrderFilter) (domain.Page[models.Order], error) {
	exec := intdb.Executor(ctx, r.DB)
	where := orderWhere(f)

	total, err := countRows(ctx, exec, intdb.Builder.Select("COUNT(*)").
		From("orders o").
		LeftJoin("customers c ON c.id = o.customer_id").
		Where(where), "orders.List.count")
	if err != nil {
		return domain.Page[models.Order]{}, err
	}

	q, page, size := paginate(orderSelect().Where(where).OrderBy("o.id DESC"), f.Page, f.PageSize)
	out := []models.Order{}
	if err := selectAll(ctx, exec, &out, q, "orders.List"); err != nil {
		return domain.Page[models.Order]{}, err
	}
	return pageOf(out, total, page, size), nil
}

// All returns every order matching f without paging, oldest visit first. Used by export.
func (r OrderRepository) All(ctx context.Context, f models.OrderFilter) ([]models.Order, error) {
	out := []models.Order{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out,
		orderSelect().Where(orderWhere(f)).OrderBy("o.visit_date ASC", "o.id ASC"), "orders.All")
	return out, err
}

func (r OrderRepository) GetByID(ctx context.Context, id int64) (models.Order, error) {
	var o models.Order
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &o, orderSelect().Where(squirrel.Eq{"o.id": id}), "orders.GetByID")
	return o, err
}

func (r OrderRepository) GetByOrderNo(ctx context.Context, orderNo string) (models.Order, error) {
	var o models.Order
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &o, orderSelect().Where(squirrel.Eq{"o.order_no": orderNo}), "orders.GetByOrderNo")
	return o, err
}

func (r OrderRepository) Items(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	out := []models.OrderItem{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, intdb.Builder.Select(orderItemColumns...).
		From("order_items").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("id ASC"), "orders.Items")
	return out, err
}

func (r OrderRepository) Create(ctx context.Context, o *models.Order) (int64, error) {
	return insertID(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Insert("orders").
		Columns("order_no", "customer_id", "status", "source", "visit_date", "adult_count", "child_count",
			"total_amount", "discount", "paid_amount", "payment_status", "notes", "accommodation_place_id", "created_by").
		Values(o.OrderNo, o.CustomerID, o.Status, o.Source, o.VisitDate, o.AdultCount, o.ChildCount,
			o.TotalAmount, o.Discount, o.PaidAmount, o.PaymentStatus, o.Notes, o.AccommodationPlaceID, o.CreatedBy), "orders.Create")
}

// Update rewrites the editable header fields and the money columns.
func (r OrderRepository) Update(ctx context.Context, o *models.Order) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("orders").
		Set("customer_id", o.CustomerID).
		Set("source", o.Source).
		Set("visit_date", o.VisitDate).
		Set("adult_count", o.AdultCount).
		Set("child_count", o.ChildCount).
		Set("total_amount", o.TotalAmount).
		Set("discount", o.Discount).
		Set("payment_status", o.PaymentStatus).
		Set("notes", o.Notes).
		Set("accommodation_place_id", o.AccommodationPlaceID).
		Where(squirrel.Eq{"id": o.ID}), "orders.Update")
}

// ReplaceItems deletes and reinserts the order lines. Call inside a transaction.
func (r OrderRepository) ReplaceItems(ctx context.Context, orderID int64, items []models.OrderItem) error {
	exec := intdb.Executor(ctx, r.DB)
	if _, err := execStmt(ctx, exec, intdb.Builder.Delete("order_items").
		Where(squirrel.Eq{"order_id": orderID}), "orders.ReplaceItems.delete"); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	ins := intdb.Builder.Insert("order_items").
		Columns("order_id", "package_id", "project_id", "name", "unit_price", "quantity", "subtotal")
	for _, it := range items {
		ins = ins.Values(orderID, it.PackageID, it.ProjectID, it.Name, it.UnitPrice, it.Quantity, it.Subtotal)
	}
	_, err := execStmt(ctx, exec, ins, "orders.ReplaceItems.insert")
	return err
}

func (r OrderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("orders").
		Set("status", status).
		Where(squirrel.Eq{"id": id}), "orders.UpdateStatus")
}

// AddPayment increments paid_amount in one statement. The row only matches while the
// order is live and the amount fits the balance, so concurrent payments cannot overpay.
// payment_status is assigned first and still sees the old paid_amount.
func (r OrderRepository) AddPayment(ctx context.Context, id int64, amount int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("orders").
		Set("payment_status", squirrel.Expr("CASE WHEN paid_amount + ? >= total_amount THEN ? ELSE ? END",
			amount, domain.PaymentPaid, domain.PaymentPartial)).
		Set("paid_amount", squirrel.Expr("paid_amount + ?", amount)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": models.OrderCancelled}).
		Where(squirrel.Expr("paid_amount + ? <= total_amount", amount)), "orders.AddPayment")
}

func (r OrderRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Delete("orders").Where(squirrel.Eq{"id": id}), "orders.Delete")
}

func (r OrderRepository) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	return countRows(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Select("COUNT(*)").From("orders").Where(squirrel.Eq{"customer_id": customerID}), "orders.CountByCustomer")
}

// BookedParticipants sums adults and children of live orders staying at a place on a date.
func (r OrderRepository) BookedParticipants(ctx context.Context, placeID int64, date string, excludeOrderID int64) (int, error) {
	q := intdb.Builder.Select("COALESCE(SUM(adult_count + child_count), 0)").
		From("orders").
		Where(squirrel.Eq{"accommodation_place_id": placeID, "visit_date": date}).
		Where(squirrel.NotEq{"status": models.OrderCancelled})
	if excludeOrderID > 0 {
		q = q.Where(squirrel.NotEq{"id": excludeOrderID})
	}
	return countRows(ctx, intdb.Executor(ctx, r.DB), q, "orders.BookedParticipants")
}
