package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campbook/internal/cache"
	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/metrics"
	"campbook/internal/utils"
)

// BookingService is the unauthenticated funnel used by the public site.
type BookingService struct {
	Catalog      CatalogService
	Customers    CustomerService
	Orders       OrderService
	Tx           Transactor
	Cache        cache.Store
	LimitPerHour int
	RequestID    string
}

type BookingInput struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	VisitDate  string `json:"visitDate"`
	AdultCount int    `json:"adultCount"`
	ChildCount int    `json:"childCount"`
	PackageID  int64  `json:"packageId"`
	Notes      string `json:"notes"`
}

type BookingResult struct {
	OrderID      int64  `json:"orderId"`
	OrderNo      string `json:"orderNo"`
	Status       string `json:"status"`
	VisitDate    string `json:"visitDate"`
	TotalAmount  int64  `json:"totalAmount"`
	CustomerName string `json:"customerName"`
	PackageName  string `json:"packageName"`
}

func (s BookingService) store() cache.Store {
	if s.Cache != nil {
		return s.Cache
	}
	return cache.NoopStore{}
}

// Packages lists active packages with their projects, cached for a few minutes.
func (s BookingService) Packages(ctx context.Context) ([]models.Package, error) {
	var out []models.Package
	if ok, err := cache.GetJSON(ctx, s.store(), cache.KeyPublicPackages, &out); err != nil {
		utils.LogEvent(s.RequestID, "public", "packages", "cache read failed: "+err.Error())
	} else if ok {
		return out, nil
	}

	list, err := s.Catalog.ListPackages(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range list {
		projects, err := s.Catalog.Projects.GetByIDs(ctx, list[i].ProjectIDs)
		if err != nil {
			return nil, err
		}
		list[i].Projects = projects
	}
	if err := cache.SetJSON(ctx, s.store(), cache.KeyPublicPackages, list, cache.PublicCatalogTTL); err != nil {
		utils.LogEvent(s.RequestID, "public", "packages", "cache write failed: "+err.Error())
	}
	return list, nil
}

func (s BookingService) Projects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if ok, err := cache.GetJSON(ctx, s.store(), cache.KeyPublicProjects, &out); err == nil && ok {
		return out, nil
	}
	list, err := s.Catalog.ListProjects(ctx, models.ProjectFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, s.store(), cache.KeyPublicProjects, list, cache.PublicCatalogTTL); err != nil {
		utils.LogEvent(s.RequestID, "public", "projects", "cache write failed: "+err.Error())
	}
	return list, nil
}

// Book creates (or reuses by phone) an online customer and a pending order for the package.
func (s BookingService) Book(ctx context.Context, clientIP string, in BookingInput) (BookingResult, error) {
	ok, err := cache.Allow(ctx, s.store(), "public_booking:"+clientIP, s.LimitPerHour, time.Hour)
	if err != nil {
		utils.LogEvent(s.RequestID, "public", "book", "rate limiter unavailable: "+err.Error())
	}
	if !ok {
		metrics.IncPublicBooking("rate_limited")
		utils.LogEvent(s.RequestID, "public", "book", "rate limited ip="+clientIP)
		return BookingResult{}, domain.RateLimitError{Msg: "too many booking requests, please try again later"}
	}

	res, err := s.book(ctx, in)
	if err != nil {
		metrics.IncPublicBooking("rejected")
		return res, err
	}
	metrics.IncPublicBooking("created")
	return res, nil
}

func (s BookingService) book(ctx context.Context, in BookingInput) (BookingResult, error) {
	in.VisitDate = strings.TrimSpace(in.VisitDate)
	if in.VisitDate == "" {
		return BookingResult{}, required("visitDate")
	}
	if _, err := domain.ParseDate(in.VisitDate); err != nil {
		return BookingResult{}, domain.ValidationError{Field: "visitDate", Msg: err.Error()}
	}
	if in.VisitDate < utils.Today() {
		return BookingResult{}, domain.ValidationError{Field: "visitDate", Msg: "must not be in the past"}
	}
	if in.AdultCount < 1 {
		return BookingResult{}, domain.ValidationError{Field: "adultCount", Msg: "must be at least 1"}
	}
	if in.ChildCount < 0 {
		return BookingResult{}, domain.ValidationError{Field: "childCount", Msg: "must not be negative"}
	}
	if in.PackageID <= 0 {
		return BookingResult{}, required("packageId")
	}
	pkg, err := s.Catalog.Packages.GetByID(ctx, in.PackageID)
	if err != nil {
		return BookingResult{}, notFound(err, "package")
	}
	if !pkg.IsActive {
		return BookingResult{}, domain.ValidationError{Field: "packageId", Msg: "package is not available"}
	}

	items := []OrderItemInput{{PackageID: &pkg.ID, Quantity: in.AdultCount}}
	if in.ChildCount > 0 {
		items = append(items, OrderItemInput{PackageID: &pkg.ID, Quantity: in.ChildCount, Child: true})
	}

	var (
		customer models.Customer
		order    models.Order
	)
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		customer, _, err = s.Customers.FindOrCreateByPhone(ctx, CustomerInput{
			Name:   in.Name,
			Phone:  in.Phone,
			Source: models.SourceOnline,
		})
		if err != nil {
			return err
		}
		order, err = s.Orders.Create(ctx, OrderInput{
			CustomerID: customer.ID,
			Source:     models.SourceOnline,
			VisitDate:  in.VisitDate,
			AdultCount: in.AdultCount,
			ChildCount: in.ChildCount,
			Notes:      in.Notes,
			Items:      items,
		}, nil)
		return err
	})
	if err != nil {
		return BookingResult{}, err
	}

	utils.LogEvent(s.RequestID, "public", "book", fmt.Sprintf("order_no=%s customer_id=%d package_id=%d", order.OrderNo, customer.ID, pkg.ID))
	return BookingResult{
		OrderID:      order.ID,
		OrderNo:      order.OrderNo,
		Status:       order.Status,
		VisitDate:    order.VisitDate,
		TotalAmount:  order.TotalAmount,
		CustomerName: customer.Name,
		PackageName:  pkg.Name,
	}, nil
}
