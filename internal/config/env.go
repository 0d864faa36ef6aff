package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDSN          string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBAutoMigrate  bool

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSAllowedOrigins []string

	UploadDir   string
	UploadMaxMB int

	MetricsEnabled            bool
	PublicBookingLimitPerHour int

	SeedFile string
}

// LoadEnv reads .env (optional), config.{yaml,toml} (optional) and the process environment.
// Environment variables always win.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil {
		log.Printf("[CONFIG] .env not loaded: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_NAME", "campbook")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_TTL_HOURS", 24)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_MAX_MB", 5)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("PUBLIC_BOOKING_LIMIT_PER_HOUR", 10)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("[CONFIG] failed to read config file: %v", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) Env {
	dsn := strings.TrimSpace(v.GetString("DB_DSN"))
	if dsn == "" {
		dsn = BuildDSN(
			v.GetString("DB_USER"),
			v.GetString("DB_PASSWORD"),
			v.GetString("DB_HOST"),
			v.GetInt("DB_PORT"),
			v.GetString("DB_NAME"),
		)
	} else {
		dsn = NormalizeDSN(dsn)
	}

	ttl := v.GetInt("JWT_TTL_HOURS")
	if ttl <= 0 {
		ttl = 24
	}

	return Env{
		AppAddr:                   strings.TrimSpace(v.GetString("APP_ADDR")),
		GinMode:                   strings.TrimSpace(v.GetString("GIN_MODE")),
		DBDSN:                     dsn,
		DBMaxOpenConns:            v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:            v.GetInt("DB_MAX_IDLE_CONNS"),
		DBAutoMigrate:             v.GetBool("DB_AUTO_MIGRATE"),
		JWTSecret:                 v.GetString("JWT_SECRET"),
		JWTTTL:                    time.Duration(ttl) * time.Hour,
		RedisAddr:                 strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:             v.GetString("REDIS_PASSWORD"),
		RedisDB:                   v.GetInt("REDIS_DB"),
		CORSAllowedOrigins:        splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		UploadDir:                 strings.TrimSpace(v.GetString("UPLOAD_DIR")),
		UploadMaxMB:               v.GetInt("UPLOAD_MAX_MB"),
		MetricsEnabled:            v.GetBool("METRICS_ENABLED"),
		PublicBookingLimitPerHour: v.GetInt("PUBLIC_BOOKING_LIMIT_PER_HOUR"),
		SeedFile:                  strings.TrimSpace(v.GetString("SEED_FILE")),
	}
}

// BuildDSN renders a go-sql-driver/mysql DSN with the options the repositories rely on.
func BuildDSN(user, password, host string, port int, name string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=Local&charset=utf8mb4&multiStatements=true&clientFoundRows=true&timeout=5s&readTimeout=30s&writeTimeout=30s",
		user, password, host, port, name)
}

// NormalizeDSN forces the driver options a user-supplied DSN may leave out.
// clientFoundRows keeps unchanged-row updates from reading as missing rows.
func NormalizeDSN(dsn string) string {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		log.Printf("[CONFIG] DB_DSN not parsed, using it as is: %v", err)
		return dsn
	}
	cfg.ClientFoundRows = true
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
