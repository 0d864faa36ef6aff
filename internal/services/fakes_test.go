package services

import (
	"context"
	"testing"
	"time"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/repositories"
	"campbook/internal/utils"
)

// The fakes embed the store interface so methods a test does not touch panic loudly.

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeUsers struct {
	UserStore
	byID    map[int64]models.User
	touched map[int64]time.Time
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{byID: map[int64]models.User{}, touched: map[int64]time.Time{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return u, repositories.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (f *fakeUsers) TouchLogin(_ context.Context, id int64, at time.Time) error {
	f.touched[id] = at
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	u := f.byID[id]
	u.PasswordHash = hash
	f.byID[id] = u
	return nil
}

type fakeCustomers struct {
	CustomerStore
	byID   map[int64]models.Customer
	nextID int64
	stats  map[int64][2]int64
	all    []models.Customer
}

func newFakeCustomers(cs ...models.Customer) *fakeCustomers {
	f := &fakeCustomers{byID: map[int64]models.Customer{}, nextID: 100, stats: map[int64][2]int64{}}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCustomers) GetByID(_ context.Context, id int64) (models.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return c, repositories.ErrNotFound
	}
	return c, nil
}

func (f *fakeCustomers) GetByPhone(_ context.Context, phone string) (models.Customer, error) {
	for _, c := range f.byID {
		if c.Phone == phone {
			return c, nil
		}
	}
	return models.Customer{}, repositories.ErrNotFound
}

func (f *fakeCustomers) Create(_ context.Context, c *models.Customer) (int64, error) {
	f.nextID++
	c.ID = f.nextID
	f.byID[c.ID] = *c
	return c.ID, nil
}

func (f *fakeCustomers) Update(_ context.Context, c *models.Customer) error {
	f.byID[c.ID] = *c
	return nil
}

func (f *fakeCustomers) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeCustomers) All(context.Context, models.CustomerFilter) ([]models.Customer, error) {
	return f.all, nil
}

func (f *fakeCustomers) OrderStats(_ context.Context, id int64) (int, int64, error) {
	s := f.stats[id]
	return int(s[0]), s[1], nil
}

type fakeOrders struct {
	OrderStore
	byID     map[int64]models.Order
	items    map[int64][]models.OrderItem
	nextID   int64
	booked   int
	perCust  map[int64]int
	payments []int64
	// raceAmount lands as a competing payment right before the next AddPayment.
	raceAmount int64
}

func newFakeOrders(os ...models.Order) *fakeOrders {
	f := &fakeOrders{byID: map[int64]models.Order{}, items: map[int64][]models.OrderItem{}, perCust: map[int64]int{}}
	for _, o := range os {
		f.byID[o.ID] = o
	}
	return f
}

func (f *fakeOrders) GetByID(_ context.Context, id int64) (models.Order, error) {
	o, ok := f.byID[id]
	if !ok {
		return o, repositories.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrders) GetByOrderNo(_ context.Context, orderNo string) (models.Order, error) {
	for _, o := range f.byID {
		if o.OrderNo == orderNo {
			return o, nil
		}
	}
	return models.Order{}, repositories.ErrNotFound
}

func (f *fakeOrders) Items(_ context.Context, id int64) ([]models.OrderItem, error) {
	return f.items[id], nil
}

func (f *fakeOrders) Create(_ context.Context, o *models.Order) (int64, error) {
	f.nextID++
	o.ID = f.nextID
	f.byID[o.ID] = *o
	return o.ID, nil
}

func (f *fakeOrders) Update(_ context.Context, o *models.Order) error {
	cur := f.byID[o.ID]
	o.Status, o.OrderNo, o.PaidAmount = cur.Status, cur.OrderNo, cur.PaidAmount
	f.byID[o.ID] = *o
	return nil
}

func (f *fakeOrders) ReplaceItems(_ context.Context, id int64, items []models.OrderItem) error {
	f.items[id] = items
	return nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id int64, status string) error {
	o := f.byID[id]
	o.Status = status
	f.byID[id] = o
	return nil
}

func (f *fakeOrders) AddPayment(_ context.Context, id int64, amount int64) error {
	o, ok := f.byID[id]
	if !ok || o.Status == models.OrderCancelled || o.PaidAmount+amount > o.TotalAmount {
		return repositories.ErrNotFound
	}
	if f.raceAmount > 0 {
		o.PaidAmount += f.raceAmount
		f.raceAmount = 0
		f.byID[id] = o
		return repositories.ErrNotFound
	}
	o.PaidAmount += amount
	o.PaymentStatus = domain.PaymentStatusFor(o.TotalAmount, o.PaidAmount)
	f.byID[id] = o
	f.payments = append(f.payments, o.PaidAmount)
	return nil
}

func (f *fakeOrders) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeOrders) CountByCustomer(_ context.Context, id int64) (int, error) {
	return f.perCust[id], nil
}

func (f *fakeOrders) BookedParticipants(context.Context, int64, string, int64) (int, error) {
	return f.booked, nil
}

func (f *fakeOrders) All(_ context.Context, _ models.OrderFilter) ([]models.Order, error) {
	out := make([]models.Order, 0, len(f.byID))
	for _, o := range f.byID {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrders) List(_ context.Context, filter models.OrderFilter) (domain.Page[models.Order], error) {
	var out []models.Order
	for _, o := range f.byID {
		if filter.CustomerID == 0 || o.CustomerID == filter.CustomerID {
			out = append(out, o)
		}
	}
	return domain.Page[models.Order]{Items: out, Pagination: domain.NewPagination(1, 20, len(out))}, nil
}

type fakePackages struct {
	PackageStore
	byID map[int64]models.Package
}

func (f *fakePackages) GetByID(_ context.Context, id int64) (models.Package, error) {
	p, ok := f.byID[id]
	if !ok {
		return p, repositories.ErrNotFound
	}
	return p, nil
}

func (f *fakePackages) List(_ context.Context, activeOnly bool) ([]models.Package, error) {
	var out []models.Package
	for _, p := range f.byID {
		if !activeOnly || p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeProjects struct {
	ProjectStore
	byID map[int64]models.Project
	refs map[int64]int
}

func (f *fakeProjects) CountSchedules(_ context.Context, id int64) (int, error) {
	return f.refs[id], nil
}

func (f *fakeProjects) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeProjects) GetByID(_ context.Context, id int64) (models.Project, error) {
	p, ok := f.byID[id]
	if !ok {
		return p, repositories.ErrNotFound
	}
	return p, nil
}

func (f *fakeProjects) GetByIDs(_ context.Context, ids []int64) ([]models.Project, error) {
	out := []models.Project{}
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) List(_ context.Context, _ models.ProjectFilter) ([]models.Project, error) {
	out := []models.Project{}
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

type fakeAccommodations struct {
	AccommodationStore
	byID map[int64]models.AccommodationPlace
	refs map[int64]int
}

func (f *fakeAccommodations) CountOrders(_ context.Context, id int64) (int, error) {
	return f.refs[id], nil
}

func (f *fakeAccommodations) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeAccommodations) GetByID(_ context.Context, id int64) (models.AccommodationPlace, error) {
	a, ok := f.byID[id]
	if !ok {
		return a, repositories.ErrNotFound
	}
	return a, nil
}

type fakeCoaches struct {
	CoachStore
	byID map[int64]models.Coach
}

func (f *fakeCoaches) GetByID(_ context.Context, id int64) (models.Coach, error) {
	c, ok := f.byID[id]
	if !ok {
		return c, repositories.ErrNotFound
	}
	return c, nil
}

type fakeSchedules struct {
	ScheduleStore
	byID      map[int64]models.Schedule
	overlaps  []models.Schedule
	lastQuery models.OverlapQuery
	cancelled []int64
	nextID    int64
}

func newFakeSchedules() *fakeSchedules {
	return &fakeSchedules{byID: map[int64]models.Schedule{}}
}

func (f *fakeSchedules) GetByID(_ context.Context, id int64) (models.Schedule, error) {
	s, ok := f.byID[id]
	if !ok {
		return s, repositories.ErrNotFound
	}
	return s, nil
}

func (f *fakeSchedules) FindCoachOverlaps(_ context.Context, q models.OverlapQuery) ([]models.Schedule, error) {
	f.lastQuery = q
	return f.overlaps, nil
}

func (f *fakeSchedules) Create(_ context.Context, s *models.Schedule) (int64, error) {
	f.nextID++
	s.ID = f.nextID
	f.byID[s.ID] = *s
	return s.ID, nil
}

func (f *fakeSchedules) Update(_ context.Context, s *models.Schedule) error {
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeSchedules) UpdateStatus(_ context.Context, id int64, status string) error {
	s := f.byID[id]
	s.Status = status
	f.byID[id] = s
	return nil
}

func (f *fakeSchedules) ListByOrder(_ context.Context, orderID int64) ([]models.Schedule, error) {
	out := []models.Schedule{}
	for _, sc := range f.byID {
		if sc.OrderID != nil && *sc.OrderID == orderID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeSchedules) CancelByOrder(_ context.Context, orderID int64) (int64, error) {
	f.cancelled = append(f.cancelled, orderID)
	return 1, nil
}

type fakeVehicles struct {
	VehicleStore
	byID map[int64]models.Vehicle
}

func (f *fakeVehicles) GetByID(_ context.Context, id int64) (models.Vehicle, error) {
	v, ok := f.byID[id]
	if !ok {
		return v, repositories.ErrNotFound
	}
	return v, nil
}

type fakeDrivers struct {
	DriverStore
	byID map[int64]models.Driver
}

func (f *fakeDrivers) GetByID(_ context.Context, id int64) (models.Driver, error) {
	d, ok := f.byID[id]
	if !ok {
		return d, repositories.ErrNotFound
	}
	return d, nil
}

type fakeShuttles struct {
	ShuttleStore
	byID           map[int64]models.ShuttleSchedule
	stops          map[int64][]models.ShuttleStop
	vehicleClash   []models.ShuttleSchedule
	driverClash    []models.ShuttleSchedule
	vehicleQueries []models.OverlapQuery
	driverQueries  []models.OverlapQuery
	nextID         int64
}

func newFakeShuttles() *fakeShuttles {
	return &fakeShuttles{byID: map[int64]models.ShuttleSchedule{}, stops: map[int64][]models.ShuttleStop{}}
}

func (f *fakeShuttles) GetByID(_ context.Context, id int64) (models.ShuttleSchedule, error) {
	s, ok := f.byID[id]
	if !ok {
		return s, repositories.ErrNotFound
	}
	return s, nil
}

func (f *fakeShuttles) Stops(_ context.Context, id int64) ([]models.ShuttleStop, error) {
	return f.stops[id], nil
}

func (f *fakeShuttles) FindVehicleOverlaps(_ context.Context, q models.OverlapQuery) ([]models.ShuttleSchedule, error) {
	f.vehicleQueries = append(f.vehicleQueries, q)
	return f.vehicleClash, nil
}

func (f *fakeShuttles) FindDriverOverlaps(_ context.Context, q models.OverlapQuery) ([]models.ShuttleSchedule, error) {
	f.driverQueries = append(f.driverQueries, q)
	return f.driverClash, nil
}

func (f *fakeShuttles) Create(_ context.Context, s *models.ShuttleSchedule) (int64, error) {
	f.nextID++
	s.ID = f.nextID
	f.byID[s.ID] = *s
	return s.ID, nil
}

func (f *fakeShuttles) Update(_ context.Context, s *models.ShuttleSchedule) error {
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeShuttles) ReplaceStops(_ context.Context, id int64, stops []models.ShuttleStop) error {
	f.stops[id] = stops
	return nil
}

func (f *fakeShuttles) UpdateStatus(_ context.Context, id int64, status string) error {
	s := f.byID[id]
	s.Status = status
	f.byID[id] = s
	return nil
}

type fakeStats struct {
	gotDate, gotMonth string
}

func (f *fakeStats) Dashboard(_ context.Context, date, monthStart string) (models.DashboardStats, error) {
	f.gotDate, f.gotMonth = date, monthStart
	return models.DashboardStats{CustomerCount: 3, RevenueThisMonth: 12500}, nil
}

func ptr[T any](v T) *T { return &v }

// freezeNow pins utils.Now for the duration of the test.
func freezeNow(t *testing.T, at time.Time) {
	prev := utils.Now
	utils.Now = func() time.Time { return at }
	t.Cleanup(func() { utils.Now = prev })
}
