package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/metrics"
	"campbook/internal/repositories"
	"campbook/internal/utils"

	"github.com/google/uuid"
)

type OrderService struct {
	Orders         OrderStore
	Customers      CustomerStore
	Packages       PackageStore
	Projects       ProjectStore
	Accommodations AccommodationStore
	Schedules      ScheduleStore
	Tx             Transactor
	RequestID      string
}

type OrderItemInput struct {
	PackageID *int64 `json:"packageId"`
	ProjectID *int64 `json:"projectId"`
	Name      string `json:"name"`
	UnitPrice *int64 `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	// Child prices a package line at the package's child price.
	Child bool `json:"child"`
}

type OrderInput struct {
	CustomerID           int64            `json:"customerId"`
	Source               string           `json:"source"`
	VisitDate            string           `json:"visitDate"`
	AdultCount           int              `json:"adultCount"`
	ChildCount           int              `json:"childCount"`
	Discount             int64            `json:"discount"`
	Notes                string           `json:"notes"`
	AccommodationPlaceID *int64           `json:"accommodationPlaceId"`
	Items                []OrderItemInput `json:"items"`
}

// NewOrderNo builds "CB" + YYYYMMDD + 6 upper-case hex characters.
func NewOrderNo() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "CB" + utils.Now().Format("20060102") + strings.ToUpper(id[:6])
}

func (s OrderService) List(ctx context.Context, f models.OrderFilter) (domain.Page[models.Order], error) {
	if err := validateOrderFilter(f); err != nil {
		return domain.Page[models.Order]{}, err
	}
	return s.Orders.List(ctx, f)
}

func validateOrderFilter(f models.OrderFilter) error {
	if f.Status != "" && !models.ValidOrderStatus(f.Status) {
		return domain.ValidationError{Field: "status", Msg: "unknown status " + f.Status}
	}
	if f.DateFrom != "" {
		if _, err := domain.ParseDate(f.DateFrom); err != nil {
			return domain.ValidationError{Field: "dateFrom", Msg: err.Error()}
		}
	}
	if f.DateTo != "" {
		if _, err := domain.ParseDate(f.DateTo); err != nil {
			return domain.ValidationError{Field: "dateTo", Msg: err.Error()}
		}
	}
	if f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		return domain.ValidationError{Field: "dateTo", Msg: "must not be before dateFrom"}
	}
	return nil
}

// Get returns the order with its lines.
func (s OrderService) Get(ctx context.Context, id int64) (models.Order, error) {
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return o, notFound(err, "order")
	}
	items, err := s.Orders.Items(ctx, id)
	if err != nil {
		return o, err
	}
	o.Items = items
	return o, nil
}

// Detail is Get plus the activity schedules booked against the order.
func (s OrderService) Detail(ctx context.Context, id int64) (models.Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return o, err
	}
	if o.Schedules, err = s.Schedules.ListByOrder(ctx, id); err != nil {
		return o, err
	}
	return o, nil
}

// DetailByNo looks an order up by its printed number.
func (s OrderService) DetailByNo(ctx context.Context, orderNo string) (models.Order, error) {
	orderNo = strings.ToUpper(strings.TrimSpace(orderNo))
	if orderNo == "" {
		return models.Order{}, required("orderNo")
	}
	o, err := s.Orders.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return o, notFound(err, "order")
	}
	return s.Detail(ctx, o.ID)
}

// priceItems resolves names and unit prices for each line and computes the totals.
func (s OrderService) priceItems(ctx context.Context, in []OrderItemInput, discount int64) ([]models.OrderItem, domain.OrderTotals, error) {
	if len(in) == 0 {
		return nil, domain.OrderTotals{}, domain.ValidationError{Field: "items", Msg: "at least one item is required"}
	}

	items := make([]models.OrderItem, len(in))
	pricing := make([]domain.ItemPricing, len(in))
	for i, it := range in {
		line := models.OrderItem{
			PackageID: positiveID(it.PackageID),
			ProjectID: positiveID(it.ProjectID),
			Name:      utils.NormalizeSpace(it.Name),
			Quantity:  it.Quantity,
		}
		var listPrice int64
		switch {
		case line.PackageID != nil:
			pkg, err := s.Packages.GetByID(ctx, *line.PackageID)
			if err != nil {
				return nil, domain.OrderTotals{}, notFound(err, "package")
			}
			listPrice = pkg.PriceFor(it.Child)
			if line.Name == "" {
				line.Name = pkg.Name
				if it.Child {
					line.Name += " (child)"
				}
			}
		case line.ProjectID != nil:
			prj, err := s.Projects.GetByID(ctx, *line.ProjectID)
			if err != nil {
				return nil, domain.OrderTotals{}, notFound(err, "project")
			}
			listPrice = prj.Price
			if line.Name == "" {
				line.Name = prj.Name
			}
		default:
			if line.Name == "" {
				return nil, domain.OrderTotals{}, domain.ValidationError{Field: fmt.Sprintf("items[%d].name", i), Msg: "is required for custom lines"}
			}
			if it.UnitPrice == nil {
				return nil, domain.OrderTotals{}, domain.ValidationError{Field: fmt.Sprintf("items[%d].unitPrice", i), Msg: "is required for custom lines"}
			}
		}
		line.UnitPrice = listPrice
		if it.UnitPrice != nil {
			line.UnitPrice = *it.UnitPrice
		}
		items[i] = line
		pricing[i] = domain.ItemPricing{UnitPrice: line.UnitPrice, Quantity: line.Quantity}
	}

	totals, err := domain.ComputeOrderTotals(pricing, discount)
	if err != nil {
		return nil, totals, err
	}
	for i := range items {
		items[i].Subtotal = totals.Subtotals[i]
	}
	return items, totals, nil
}

func positiveID(p *int64) *int64 {
	if p == nil || *p <= 0 {
		return nil
	}
	return p
}

func (s OrderService) validateHeader(ctx context.Context, in OrderInput, selfID int64) (models.Order, error) {
	o := models.Order{
		CustomerID:           in.CustomerID,
		Source:               strings.TrimSpace(in.Source),
		VisitDate:            strings.TrimSpace(in.VisitDate),
		AdultCount:           in.AdultCount,
		ChildCount:           in.ChildCount,
		Notes:                strings.TrimSpace(in.Notes),
		AccommodationPlaceID: positiveID(in.AccommodationPlaceID),
	}
	if o.CustomerID <= 0 {
		return o, required("customerId")
	}
	if _, err := s.Customers.GetByID(ctx, o.CustomerID); err != nil {
		return o, notFound(err, "customer")
	}
	if o.Source == "" {
		o.Source = models.SourceWalkIn
	}
	if !models.ValidSource(o.Source) {
		return o, domain.ValidationError{Field: "source", Msg: "unknown source " + o.Source}
	}
	if o.VisitDate == "" {
		return o, required("visitDate")
	}
	if _, err := domain.ParseDate(o.VisitDate); err != nil {
		return o, domain.ValidationError{Field: "visitDate", Msg: err.Error()}
	}
	if o.AdultCount < 0 || o.ChildCount < 0 {
		return o, domain.ValidationError{Field: "adultCount", Msg: "head counts must not be negative"}
	}
	if o.Participants() < 1 {
		return o, domain.ValidationError{Field: "adultCount", Msg: "at least one participant is required"}
	}
	if o.AccommodationPlaceID != nil {
		if err := s.checkAccommodation(ctx, *o.AccommodationPlaceID, o.VisitDate, o.Participants(), selfID); err != nil {
			return o, err
		}
	}
	return o, nil
}

// checkAccommodation requires an active place with room left on the visit date.
func (s OrderService) checkAccommodation(ctx context.Context, placeID int64, date string, heads int, selfID int64) error {
	place, err := s.Accommodations.GetByID(ctx, placeID)
	if err != nil {
		return notFound(err, "accommodation place")
	}
	if !place.IsActive {
		return domain.ValidationError{Field: "accommodationPlaceId", Msg: "accommodation place is not active"}
	}
	booked, err := s.Orders.BookedParticipants(ctx, placeID, date, selfID)
	if err != nil {
		return err
	}
	if booked+heads > place.Capacity {
		return domain.ValidationError{
			Field: "accommodationPlaceId",
			Msg:   fmt.Sprintf("only %d of %d places left on %s", max(place.Capacity-booked, 0), place.Capacity, date),
			Code:  domain.CodeCapacityExceeded,
		}
	}
	return nil
}

func (s OrderService) Create(ctx context.Context, in OrderInput, createdBy *int64) (models.Order, error) {
	o, err := s.validateHeader(ctx, in, 0)
	if err != nil {
		return o, err
	}
	items, totals, err := s.priceItems(ctx, in.Items, in.Discount)
	if err != nil {
		return o, err
	}

	o.OrderNo = NewOrderNo()
	o.Status = models.OrderPending
	o.TotalAmount = totals.Total
	o.Discount = totals.Discount
	o.PaymentStatus = domain.PaymentStatusFor(o.TotalAmount, 0)
	o.CreatedBy = createdBy

	var id int64
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if id, err = s.Orders.Create(ctx, &o); err != nil {
			return err
		}
		return s.Orders.ReplaceItems(ctx, id, items)
	})
	if err != nil {
		return o, mapRepoErr(err, "order", "", "")
	}

	metrics.IncOrderCreated(o.Source)
	utils.LogEvent(s.RequestID, "orders", "create", fmt.Sprintf("order_id=%d order_no=%s total=%d", id, o.OrderNo, o.TotalAmount))
	return s.Get(ctx, id)
}

// Update replaces header and lines of an order that is not finished yet.
func (s OrderService) Update(ctx context.Context, id int64, in OrderInput) (models.Order, error) {
	cur, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return cur, notFound(err, "order")
	}
	if !cur.IsEditable() {
		return cur, domain.ConflictError{Resource: "order", Msg: cur.Status + " orders cannot be edited", Code: domain.CodeInvalidStatus}
	}
	o, err := s.validateHeader(ctx, in, id)
	if err != nil {
		return o, err
	}
	items, totals, err := s.priceItems(ctx, in.Items, in.Discount)
	if err != nil {
		return o, err
	}
	o.ID = id
	o.TotalAmount = totals.Total
	o.Discount = totals.Discount
	o.PaymentStatus = domain.PaymentStatusFor(o.TotalAmount, cur.PaidAmount)

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Orders.Update(ctx, &o); err != nil {
			return err
		}
		return s.Orders.ReplaceItems(ctx, id, items)
	})
	if err != nil {
		return o, mapRepoErr(err, "order", "", "")
	}
	utils.LogEvent(s.RequestID, "orders", "update", fmt.Sprintf("order_id=%d total=%d", id, o.TotalAmount))
	return s.Get(ctx, id)
}

// UpdateStatus walks the status machine. Cancelling an order also cancels its live schedules.
func (s OrderService) UpdateStatus(ctx context.Context, id int64, next string) (models.Order, error) {
	next = strings.TrimSpace(next)
	if !models.ValidOrderStatus(next) {
		return models.Order{}, domain.ValidationError{Field: "status", Msg: "unknown status " + next}
	}
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return o, notFound(err, "order")
	}
	if !o.CanTransitionTo(next) {
		return o, invalidStatus("order", o.Status, next)
	}

	var cancelled int64
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Orders.UpdateStatus(ctx, id, next); err != nil {
			return err
		}
		if next == models.OrderCancelled {
			var err error
			cancelled, err = s.Schedules.CancelByOrder(ctx, id)
			return err
		}
		return nil
	})
	if err != nil {
		return o, notFound(err, "order")
	}
	utils.LogEvent(s.RequestID, "orders", "status", fmt.Sprintf("order_id=%d %s->%s schedules_cancelled=%d", id, o.Status, next, cancelled))
	return s.Get(ctx, id)
}

// AddPayment records a received amount. Paying more than the outstanding balance is refused.
// The increment is applied atomically; the read only shapes the error message.
func (s OrderService) AddPayment(ctx context.Context, id int64, amount int64) (models.Order, error) {
	if amount <= 0 {
		return models.Order{}, domain.ValidationError{Field: "amount", Msg: "must be greater than 0"}
	}
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return o, notFound(err, "order")
	}
	if err := paymentRefusal(o, amount); err != nil {
		return o, err
	}
	if err := s.Orders.AddPayment(ctx, id, amount); err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return o, err
		}
		// lost a race: report against the current row
		if o, err = s.Orders.GetByID(ctx, id); err != nil {
			return o, notFound(err, "order")
		}
		if err := paymentRefusal(o, amount); err != nil {
			return o, err
		}
		return o, domain.ConflictError{Resource: "order", Msg: "payment could not be applied, retry", Code: domain.CodeConflict}
	}
	utils.LogEvent(s.RequestID, "orders", "payment", fmt.Sprintf("order_id=%d amount=%d", id, amount))
	return s.Get(ctx, id)
}

func paymentRefusal(o models.Order, amount int64) error {
	if o.Status == models.OrderCancelled {
		return domain.ConflictError{Resource: "order", Msg: "cannot take payments for a cancelled order", Code: domain.CodeInvalidStatus}
	}
	if outstanding := o.TotalAmount - o.PaidAmount; amount > outstanding {
		return domain.ValidationError{
			Field: "amount",
			Msg:   fmt.Sprintf("exceeds the outstanding balance of %s", utils.FormatCents(max(outstanding, 0))),
		}
	}
	return nil
}

func (s OrderService) Delete(ctx context.Context, id int64) error {
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "order")
	}
	if !o.CanBeDeleted() {
		return domain.ConflictError{Resource: "order", Msg: "completed orders cannot be deleted", Code: domain.CodeInvalidStatus}
	}
	if err := s.Orders.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "order", "", "")
	}
	utils.LogEvent(s.RequestID, "orders", "delete", fmt.Sprintf("order_id=%d order_no=%s", id, o.OrderNo))
	return nil
}

// Export returns every order matching f for the spreadsheet export.
func (s OrderService) Export(ctx context.Context, f models.OrderFilter) ([]models.Order, error) {
	if err := validateOrderFilter(f); err != nil {
		return nil, err
	}
	return s.Orders.All(ctx, f)
}
