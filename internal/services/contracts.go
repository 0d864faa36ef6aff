package services

import (
	"context"
	"time"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
)

// Transactor runs fn in one database transaction. *db.TxManager implements it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User) (int64, error)
	Update(ctx context.Context, u *models.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	TouchLogin(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

type CustomerStore interface {
	List(ctx context.Context, f models.CustomerFilter) (domain.Page[models.Customer], error)
	All(ctx context.Context, f models.CustomerFilter) ([]models.Customer, error)
	GetByID(ctx context.Context, id int64) (models.Customer, error)
	GetByPhone(ctx context.Context, phone string) (models.Customer, error)
	Create(ctx context.Context, c *models.Customer) (int64, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id int64) error
	OrderStats(ctx context.Context, id int64) (int, int64, error)
}

type ProjectStore interface {
	List(ctx context.Context, f models.ProjectFilter) ([]models.Project, error)
	GetByID(ctx context.Context, id int64) (models.Project, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.Project, error)
	Create(ctx context.Context, p *models.Project) (int64, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id int64) error
	CountSchedules(ctx context.Context, id int64) (int, error)
}

type PackageStore interface {
	List(ctx context.Context, activeOnly bool) ([]models.Package, error)
	GetByID(ctx context.Context, id int64) (models.Package, error)
	Create(ctx context.Context, p *models.Package) (int64, error)
	Update(ctx context.Context, p *models.Package) error
	ReplaceProjects(ctx context.Context, packageID int64, projectIDs []int64) error
	Delete(ctx context.Context, id int64) error
	CountOrderItems(ctx context.Context, id int64) (int, error)
}

type OrderStore interface {
	List(ctx context.Context, f models.OrderFilter) (domain.Page[models.Order], error)
	All(ctx context.Context, f models.OrderFilter) ([]models.Order, error)
	GetByID(ctx context.Context, id int64) (models.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (models.Order, error)
	Items(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	Create(ctx context.Context, o *models.Order) (int64, error)
	Update(ctx context.Context, o *models.Order) error
	ReplaceItems(ctx context.Context, orderID int64, items []models.OrderItem) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	AddPayment(ctx context.Context, id int64, amount int64) error
	Delete(ctx context.Context, id int64) error
	CountByCustomer(ctx context.Context, customerID int64) (int, error)
	BookedParticipants(ctx context.Context, placeID int64, date string, excludeOrderID int64) (int, error)
}

type CoachStore interface {
	List(ctx context.Context, keyword, status string) ([]models.Coach, error)
	GetByID(ctx context.Context, id int64) (models.Coach, error)
	Create(ctx context.Context, c *models.Coach) (int64, error)
	Update(ctx context.Context, c *models.Coach) error
	Delete(ctx context.Context, id int64) error
	CountUpcomingSchedules(ctx context.Context, id int64, fromDate string) (int, error)
}

type ScheduleStore interface {
	List(ctx context.Context, f models.ScheduleFilter) ([]models.Schedule, error)
	GetByID(ctx context.Context, id int64) (models.Schedule, error)
	ListByOrder(ctx context.Context, orderID int64) ([]models.Schedule, error)
	FindCoachOverlaps(ctx context.Context, q models.OverlapQuery) ([]models.Schedule, error)
	Create(ctx context.Context, s *models.Schedule) (int64, error)
	Update(ctx context.Context, s *models.Schedule) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	CancelByOrder(ctx context.Context, orderID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type VehicleStore interface {
	List(ctx context.Context, keyword, status string) ([]models.Vehicle, error)
	GetByID(ctx context.Context, id int64) (models.Vehicle, error)
	Create(ctx context.Context, v *models.Vehicle) (int64, error)
	Update(ctx context.Context, v *models.Vehicle) error
	Delete(ctx context.Context, id int64) error
	CountShuttles(ctx context.Context, id int64) (int, error)
}

type DriverStore interface {
	List(ctx context.Context, keyword, status string) ([]models.Driver, error)
	GetByID(ctx context.Context, id int64) (models.Driver, error)
	Create(ctx context.Context, d *models.Driver) (int64, error)
	Update(ctx context.Context, d *models.Driver) error
	Delete(ctx context.Context, id int64) error
	CountShuttles(ctx context.Context, id int64) (int, error)
}

type ShuttleStore interface {
	List(ctx context.Context, f models.ShuttleFilter) ([]models.ShuttleSchedule, error)
	GetByID(ctx context.Context, id int64) (models.ShuttleSchedule, error)
	Stops(ctx context.Context, shuttleID int64) ([]models.ShuttleStop, error)
	FindVehicleOverlaps(ctx context.Context, q models.OverlapQuery) ([]models.ShuttleSchedule, error)
	FindDriverOverlaps(ctx context.Context, q models.OverlapQuery) ([]models.ShuttleSchedule, error)
	Create(ctx context.Context, s *models.ShuttleSchedule) (int64, error)
	Update(ctx context.Context, s *models.ShuttleSchedule) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	ReplaceStops(ctx context.Context, shuttleID int64, stops []models.ShuttleStop) error
	Delete(ctx context.Context, id int64) error
}

type AccommodationStore interface {
	List(ctx context.Context, activeOnly bool) ([]models.AccommodationPlace, error)
	GetByID(ctx context.Context, id int64) (models.AccommodationPlace, error)
	Create(ctx context.Context, a *models.AccommodationPlace) (int64, error)
	Update(ctx context.Context, a *models.AccommodationPlace) error
	Delete(ctx context.Context, id int64) error
	CountOrders(ctx context.Context, id int64) (int, error)
}

type StatsStore interface {
	Dashboard(ctx context.Context, date, monthStart string) (models.DashboardStats, error)
}
