package services

import (
	"context"
	"testing"
	"time"

	"campbook/internal/cache"
	"campbook/internal/domain"
	"campbook/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	svc       BookingService
	customers *fakeCustomers
	orders    *fakeOrders
	store     *cache.MemoryStore
}

func newBookingFixture(t *testing.T, limit int) bookingFixture {
	freezeNow(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local))
	f := bookingFixture{
		customers: newFakeCustomers(models.Customer{ID: 1, Name: "Returning", Phone: "13800001111", Source: models.SourceWalkIn}),
		orders:    newFakeOrders(),
		store:     cache.NewMemoryStore(),
	}
	packages := &fakePackages{byID: map[int64]models.Package{
		10: {ID: 10, Name: "Weekend Camp", Price: 20000, ChildPrice: 12000, IsActive: true, ProjectIDs: []int64{1}},
		11: {ID: 11, Name: "Retired Camp", Price: 1000, IsActive: false},
	}}
	projects := &fakeProjects{byID: map[int64]models.Project{1: {ID: 1, Name: "Kayak", IsActive: true}}}
	tx := &fakeTx{}

	f.svc = BookingService{
		Catalog:   CatalogService{Projects: projects, Packages: packages, Tx: tx, Cache: f.store},
		Customers: CustomerService{Customers: f.customers, Orders: f.orders},
		Orders: OrderService{
			Orders:    f.orders,
			Customers: f.customers,
			Packages:  packages,
			Projects:  projects,
			Schedules: newFakeSchedules(),
			Tx:        tx,
		},
		Tx:           tx,
		Cache:        f.store,
		LimitPerHour: limit,
	}
	return f
}

func TestBookingServiceBookCreatesOnlineOrder(t *testing.T) {
	f := newBookingFixture(t, 10)

	res, err := f.svc.Book(context.Background(), "10.0.0.1", BookingInput{
		Name: "New Guest", Phone: "137 0000 2222", VisitDate: "2025-06-05", AdultCount: 2, ChildCount: 1, PackageID: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, res.Status)
	assert.Equal(t, int64(52000), res.TotalAmount)
	assert.Equal(t, "Weekend Camp", res.PackageName)

	o := f.orders.byID[res.OrderID]
	assert.Equal(t, models.SourceOnline, o.Source)
	require.Len(t, f.orders.items[res.OrderID], 2)

	c, err := f.customers.GetByPhone(context.Background(), "13700002222")
	require.NoError(t, err)
	assert.Equal(t, models.SourceOnline, c.Source)
	assert.Equal(t, c.ID, o.CustomerID)
}

func TestBookingServiceReusesCustomerByPhone(t *testing.T) {
	f := newBookingFixture(t, 10)

	res, err := f.svc.Book(context.Background(), "10.0.0.1", BookingInput{
		Name: "Someone Else", Phone: "13800001111", VisitDate: "2025-06-01", AdultCount: 1, PackageID: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Returning", res.CustomerName)
	assert.Len(t, f.customers.byID, 1)
}

func TestBookingServiceValidation(t *testing.T) {
	f := newBookingFixture(t, 0)
	ctx := context.Background()
	ok := BookingInput{Name: "G", Phone: "13700002222", VisitDate: "2025-06-05", AdultCount: 1, PackageID: 10}

	past := ok
	past.VisitDate = "2025-05-31"
	_, err := f.svc.Book(ctx, "ip", past)
	assert.True(t, domain.IsValidation(err))

	noAdult := ok
	noAdult.AdultCount = 0
	_, err = f.svc.Book(ctx, "ip", noAdult)
	assert.True(t, domain.IsValidation(err))

	inactive := ok
	inactive.PackageID = 11
	_, err = f.svc.Book(ctx, "ip", inactive)
	assert.True(t, domain.IsValidation(err))

	missing := ok
	missing.PackageID = 99
	_, err = f.svc.Book(ctx, "ip", missing)
	assert.True(t, domain.IsNotFound(err))

	assert.Empty(t, f.orders.byID)
}

func TestBookingServiceRateLimit(t *testing.T) {
	f := newBookingFixture(t, 2)
	ctx := context.Background()
	in := BookingInput{Name: "G", Phone: "13700002222", VisitDate: "2025-06-05", AdultCount: 1, PackageID: 10}

	_, err := f.svc.Book(ctx, "10.0.0.1", in)
	require.NoError(t, err)
	_, err = f.svc.Book(ctx, "10.0.0.1", BookingInput{})
	assert.True(t, domain.IsValidation(err))

	_, err = f.svc.Book(ctx, "10.0.0.1", in)
	assert.True(t, domain.IsRateLimited(err))

	_, err = f.svc.Book(ctx, "10.0.0.2", in)
	assert.NoError(t, err)
}

func TestBookingServicePackagesAreCached(t *testing.T) {
	f := newBookingFixture(t, 0)
	ctx := context.Background()

	list, err := f.svc.Packages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Projects, 1)
	assert.Equal(t, "Kayak", list[0].Projects[0].Name)

	// a second read must come from the cache even if the store changes underneath
	delete(f.svc.Catalog.Packages.(*fakePackages).byID, 10)
	list, err = f.svc.Packages(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	ok, err := f.store.Exists(ctx, cache.KeyPublicPackages)
	require.NoError(t, err)
	assert.True(t, ok)
}
