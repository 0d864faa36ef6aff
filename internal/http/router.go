package api

import (
	"log"
	stdhttp "net/http"

	"campbook/internal/config"
	"campbook/internal/domain/models"
	h "campbook/internal/http/handlers"
	"campbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env config.Env, hd *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))
	if env.MetricsEnabled {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}
	r.MaxMultipartMemory = int64(env.UploadMaxMB+1) << 20

	r.NoRoute(hd.NotFound)

	if hd.Uploads.Dir != "" {
		r.StaticFS("/uploads", stdhttp.Dir(hd.Uploads.Dir))
	}

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/db-check", hd.DBCheck)

		public := api.Group("/public")
		public.GET("/packages", hd.PublicPackages)
		public.GET("/projects", hd.PublicProjects)
		public.POST("/bookings", hd.PublicBook)

		api.POST("/auth/login", hd.Login)

		authed := api.Group("", middleware.AuthRequired(hd.Auth))

		auth := authed.Group("/auth")
		auth.POST("/logout", hd.Logout)
		auth.GET("/me", hd.Me)
		auth.PUT("/password", hd.ChangePassword)

		admin := authed.Group("", middleware.RequireRoles(models.RoleAdmin))
		admin.GET("/routes", hd.Routes)

		users := admin.Group("/users")
		users.GET("", hd.ListUsers)
		users.POST("", hd.CreateUser)
		users.PUT("/:id", hd.UpdateUser)
		users.DELETE("/:id", hd.DeleteUser)

		customers := authed.Group("/customers")
		customers.GET("", hd.ListCustomers)
		customers.GET("/:id", hd.GetCustomer)
		customers.GET("/:id/orders", hd.CustomerOrders)
		customers.POST("", hd.CreateCustomer)
		customers.PUT("/:id", hd.UpdateCustomer)
		customers.DELETE("/:id", hd.DeleteCustomer)

		projects := authed.Group("/projects")
		projects.GET("", hd.ListProjects)
		projects.GET("/:id", hd.GetProject)
		projects.POST("", hd.CreateProject)
		projects.PUT("/:id", hd.UpdateProject)
		projects.DELETE("/:id", hd.DeleteProject)

		packages := authed.Group("/packages")
		packages.GET("", hd.ListPackages)
		packages.GET("/:id", hd.GetPackage)
		packages.POST("", hd.CreatePackage)
		packages.PUT("/:id", hd.UpdatePackage)
		packages.DELETE("/:id", hd.DeletePackage)

		places := authed.Group("/accommodations")
		places.GET("", hd.ListAccommodations)
		places.GET("/:id", hd.GetAccommodation)
		places.POST("", hd.CreateAccommodation)
		places.PUT("/:id", hd.UpdateAccommodation)
		places.DELETE("/:id", hd.DeleteAccommodation)

		orders := authed.Group("/orders")
		orders.GET("", hd.ListOrders)
		orders.GET("/:id", hd.GetOrder)
		orders.GET("/no/:orderNo", hd.GetOrderByNo)
		orders.POST("", hd.CreateOrder)
		orders.PUT("/:id", hd.UpdateOrder)
		orders.PATCH("/:id/status", hd.UpdateOrderStatus)
		orders.POST("/:id/payments", hd.AddOrderPayment)
		orders.GET("/:id/confirmation", hd.OrderConfirmationPDF)
		orders.DELETE("/:id", hd.DeleteOrder)

		coaches := authed.Group("/coaches")
		coaches.GET("", hd.ListCoaches)
		coaches.GET("/:id", hd.GetCoach)
		coaches.POST("", hd.CreateCoach)
		coaches.PUT("/:id", hd.UpdateCoach)
		coaches.DELETE("/:id", hd.DeleteCoach)

		schedules := authed.Group("/schedules")
		schedules.GET("", hd.ListSchedules)
		schedules.GET("/timeline", hd.ScheduleTimeline)
		schedules.GET("/check-conflict", hd.CheckScheduleConflict)
		schedules.GET("/:id", hd.GetSchedule)
		schedules.POST("", hd.CreateSchedule)
		schedules.PUT("/:id", hd.UpdateSchedule)
		schedules.PATCH("/:id/status", hd.UpdateScheduleStatus)
		schedules.DELETE("/:id", hd.DeleteSchedule)

		vehicles := authed.Group("/vehicles")
		vehicles.GET("", hd.ListVehicles)
		vehicles.GET("/:id", hd.GetVehicle)
		vehicles.POST("", hd.CreateVehicle)
		vehicles.PUT("/:id", hd.UpdateVehicle)
		vehicles.DELETE("/:id", hd.DeleteVehicle)

		drivers := authed.Group("/drivers")
		drivers.GET("", hd.ListDrivers)
		drivers.GET("/:id", hd.GetDriver)
		drivers.POST("", hd.CreateDriver)
		drivers.PUT("/:id", hd.UpdateDriver)
		drivers.DELETE("/:id", hd.DeleteDriver)

		shuttle := authed.Group("/shuttle/schedules")
		shuttle.GET("", hd.ListShuttles)
		shuttle.GET("/:id", hd.GetShuttle)
		shuttle.POST("", hd.CreateShuttle)
		shuttle.PUT("/:id", hd.UpdateShuttle)
		shuttle.PUT("/:id/stops", hd.ReplaceShuttleStops)
		shuttle.PATCH("/:id/status", hd.UpdateShuttleStatus)
		shuttle.DELETE("/:id", hd.DeleteShuttle)

		export := authed.Group("/export")
		export.GET("/orders", hd.ExportOrders)
		export.GET("/customers", hd.ExportCustomers)

		authed.POST("/uploads/images", hd.UploadImage)
		authed.GET("/dashboard/stats", hd.DashboardStats)
	}

	hd.SetRouter(r)
	return r
}
