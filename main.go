package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campbook/internal/cache"
	"campbook/internal/config"
	intdb "campbook/internal/db"
	router "campbook/internal/http"
	"campbook/internal/http/handlers"
	"campbook/internal/metrics"
	"campbook/internal/repositories"
	"campbook/internal/seed"
	"campbook/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := config.ConnectDB(env)
	if err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}
	defer db.Close()

	if env.DBAutoMigrate {
		if err := intdb.RunMigrations(db.DB); err != nil {
			log.Fatalf("[DB] %v", err)
		}
	}

	store := connectCache(env)
	hd := buildHandler(env, db, store)

	if env.SeedFile != "" {
		runSeed(env.SeedFile, hd)
	}

	if env.MetricsEnabled {
		metrics.Register()
	}

	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("[HTTP] listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[HTTP] server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[HTTP] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[HTTP] shutdown failed: %v", err)
	}

	log.Println("[HTTP] server stopped")
}

// connectCache falls back to a no-op store when redis is not configured or unreachable.
func connectCache(env config.Env) cache.Store {
	client := cache.NewRedisClient(env)
	if client == nil {
		log.Println("[CACHE] REDIS_ADDR empty, caching and rate limiting disabled")
		return cache.NoopStore{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cache.Ping(ctx, client); err != nil {
		log.Printf("[CACHE] %v, caching and rate limiting disabled", err)
		_ = client.Close()
		return cache.NoopStore{}
	}
	log.Printf("[CACHE] connected to redis at %s", env.RedisAddr)
	return cache.NewRedisStore(client)
}

func buildHandler(env config.Env, db *sqlx.DB, store cache.Store) *handlers.Handler {
	tx := intdb.NewTxManager(db)

	users := repositories.UserRepository{DB: db}
	customers := repositories.CustomerRepository{DB: db}
	projects := repositories.ProjectRepository{DB: db}
	packages := repositories.PackageRepository{DB: db}
	places := repositories.AccommodationRepository{DB: db}
	orders := repositories.OrderRepository{DB: db}
	coaches := repositories.CoachRepository{DB: db}
	schedules := repositories.ScheduleRepository{DB: db}
	vehicles := repositories.VehicleRepository{DB: db}
	drivers := repositories.DriverRepository{DB: db}
	shuttles := repositories.ShuttleRepository{DB: db}

	catalog := services.CatalogService{Projects: projects, Packages: packages, Accommodations: places, Tx: tx, Cache: store}
	customerSvc := services.CustomerService{Customers: customers, Orders: orders}
	orderSvc := services.OrderService{
		Orders:         orders,
		Customers:      customers,
		Packages:       packages,
		Projects:       projects,
		Accommodations: places,
		Schedules:      schedules,
		Tx:             tx,
	}

	maxMB := env.UploadMaxMB
	if maxMB <= 0 {
		maxMB = 5
	}

	return &handlers.Handler{
		DB:        db,
		Auth:      services.AuthService{Users: users, Cache: store, Secret: []byte(env.JWTSecret), TTL: env.JWTTTL},
		Users:     services.UserService{Users: users},
		Customers: customerSvc,
		Catalog:   catalog,
		Orders:    orderSvc,
		Coaches:   services.CoachService{Coaches: coaches},
		Schedules: services.ScheduleService{Schedules: schedules, Projects: projects, Coaches: coaches, Orders: orders},
		Fleet:     services.FleetService{Vehicles: vehicles, Drivers: drivers},
		Shuttles:  services.ShuttleService{Shuttles: shuttles, Vehicles: vehicles, Drivers: drivers, Orders: orders, Tx: tx},
		Booking: services.BookingService{
			Catalog:      catalog,
			Customers:    customerSvc,
			Orders:       orderSvc,
			Tx:           tx,
			Cache:        store,
			LimitPerHour: env.PublicBookingLimitPerHour,
		},
		Export:    services.ExportService{Orders: orderSvc, Customers: customers},
		Docs:      services.DocsService{Orders: orders, Customers: customers, Places: places},
		Uploads:   services.UploadService{Dir: env.UploadDir, URLPrefix: "/uploads", MaxBytes: int64(maxMB) << 20},
		Dashboard: services.DashboardService{Store: repositories.StatsRepository{DB: db}},
	}
}

func runSeed(path string, hd *handlers.Handler) {
	f, err := seed.LoadFile(path)
	if err != nil {
		log.Fatalf("[SEED] %v", err)
	}
	s := seed.Seeder{
		Users:     hd.Users,
		Catalog:   hd.Catalog,
		Coaches:   hd.Coaches,
		Fleet:     hd.Fleet,
		RequestID: "seed",
	}
	res, err := s.Apply(context.Background(), f)
	if err != nil {
		log.Fatalf("[SEED] %v", err)
	}
	log.Printf("[SEED] applied %s inserted=%v", path, res)
}
