package handlers

import (
	"sync"

	"campbook/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Handler holds the service prototypes. Each request copies the one it needs and
// stamps it with the request id before calling it.
type Handler struct {
	DB *sqlx.DB

	Auth      services.AuthService
	Users     services.UserService
	Customers services.CustomerService
	Catalog   services.CatalogService
	Orders    services.OrderService
	Coaches   services.CoachService
	Schedules services.ScheduleService
	Fleet     services.FleetService
	Shuttles  services.ShuttleService
	Booking   services.BookingService
	Export    services.ExportService
	Docs      services.DocsService
	Uploads   services.UploadService
	Dashboard services.DashboardService

	routerMu sync.RWMutex
	router   *gin.Engine
}

// SetRouter stores the active gin engine for /api/routes.
func (h *Handler) SetRouter(r *gin.Engine) {
	h.routerMu.Lock()
	defer h.routerMu.Unlock()
	h.router = r
}
