package models

import "time"

const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

var orderTransitions = map[string][]string{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderInProgress, OrderCancelled},
	OrderInProgress: {OrderCompleted},
}

type Order struct {
	ID                   int64     `db:"id" json:"id"`
	OrderNo              string    `db:"order_no" json:"orderNo"`
	CustomerID           int64     `db:"customer_id" json:"customerId"`
	Status               string    `db:"status" json:"status"`
	Source               string    `db:"source" json:"source"`
	VisitDate            string    `db:"visit_date" json:"visitDate"`
	AdultCount           int       `db:"adult_count" json:"adultCount"`
	ChildCount           int       `db:"child_count" json:"childCount"`
	TotalAmount          int64     `db:"total_amount" json:"totalAmount"`
	Discount             int64     `db:"discount" json:"discount"`
	PaidAmount           int64     `db:"paid_amount" json:"paidAmount"`
	PaymentStatus        string    `db:"payment_status" json:"paymentStatus"`
	Notes                string    `db:"notes" json:"notes"`
	AccommodationPlaceID *int64    `db:"accommodation_place_id" json:"accommodationPlaceId"`
	CreatedBy            *int64    `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`

	CustomerName  string      `db:"customer_name" json:"customerName,omitempty"`
	CustomerPhone string      `db:"customer_phone" json:"customerPhone,omitempty"`
	Items         []OrderItem `db:"-" json:"items,omitempty"`
	Schedules     []Schedule  `db:"-" json:"schedules,omitempty"`
}

type OrderItem struct {
	ID        int64  `db:"id" json:"id"`
	OrderID   int64  `db:"order_id" json:"orderId"`
	PackageID *int64 `db:"package_id" json:"packageId"`
	ProjectID *int64 `db:"project_id" json:"projectId"`
	Name      string `db:"name" json:"name"`
	UnitPrice int64  `db:"unit_price" json:"unitPrice"`
	Quantity  int    `db:"quantity" json:"quantity"`
	Subtotal  int64  `db:"subtotal" json:"subtotal"`
}

type OrderFilter struct {
	Status     string
	CustomerID int64
	Keyword    string
	DateFrom   string
	DateTo     string
	Page       int
	PageSize   int
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine allows moving to next.
func (o *Order) CanTransitionTo(next string) bool {
	for _, s := range orderTransitions[o.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsEditable is false once the order is finished either way.
func (o *Order) IsEditable() bool {
	return o.Status != OrderCompleted && o.Status != OrderCancelled
}

func (o *Order) CanBeDeleted() bool {
	return o.Status != OrderCompleted
}

func (o *Order) Participants() int {
	return o.AdultCount + o.ChildCount
}
