package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/services/repositories"
)

// DatabaseService owns the gorm connection. Sqlite by default; postgres when
// DB_DRIVER=postgres (DATABASE_URL or DB_* variables).
type DatabaseService struct {
	context.DefaultService
	db *gorm.DB

	driver   string
	database string

	users     *repositories.UserRepository
	sessions  *repositories.StudySessionRepository
	payments  *repositories.PaymentRepository
	rateLimit *repositories.RateLimitRepository
}

const DB_SVC = "db_svc"

// Id returns Service ID
func (ds DatabaseService) Id() string {
	return DB_SVC
}

// Db Access to raw DatabaseService db
func (ds DatabaseService) Db() *gorm.DB {
	return ds.db
}

func (ds *DatabaseService) Users() *repositories.UserRepository {
	return ds.users
}

func (ds *DatabaseService) Sessions() *repositories.StudySessionRepository {
	return ds.sessions
}

func (ds *DatabaseService) Payments() *repositories.PaymentRepository {
	return ds.payments
}

func (ds *DatabaseService) RateLimits() *repositories.RateLimitRepository {
	return ds.rateLimit
}

// Configure the service
func (ds *DatabaseService) Configure(ctx *context.Context) error {
	ds.driver = os.Getenv("DB_DRIVER")
	if ds.driver == "" {
		ds.driver = "sqlite"
	}

	switch ds.driver {
	case "postgres":
		ds.database = postgresDSN()
	default:
		ds.database = os.Getenv("DB_DATABASE")
		if ds.database == "" {
			ds.database = "shulecoach.db"
		}
	}

	return ds.DefaultService.Configure(ctx)
}

func postgresDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", "postgres")
	password := envOr("DB_PASSWORD", "postgres")
	dbname := envOr("DB_NAME", "shule_api")
	sslmode := envOr("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Start the service and open connection to the database
// Migrate any tables that have changed since last runtime
func (ds *DatabaseService) Start() (err error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	}

	if ds.driver == "postgres" {
		ds.db, err = ds.openPostgres(config)
	} else {
		ds.db, err = gorm.Open(sqlite.Open(ds.database), config)
	}
	if err != nil {
		return err
	}

	models := []interface{}{
		&model.User{},
		&model.Subscription{},
		&model.PaymentRecord{},
		&model.StudyProgress{},
		&model.StudySession{},
		&model.RateLimit{},
	}

	if err = ds.db.AutoMigrate(models...); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	ds.users = repositories.NewUserRepository(ds.db)
	ds.sessions = repositories.NewStudySessionRepository(ds.db)
	ds.payments = repositories.NewPaymentRepository(ds.db)
	ds.rateLimit = repositories.NewRateLimitRepository(ds.db)

	log.Println("Database connected and migrated successfully")
	return nil
}

// openPostgres retries with backoff; the container may come up before the db.
func (ds *DatabaseService) openPostgres(config *gorm.Config) (*gorm.DB, error) {
	maxRetries := 10
	retryDelay := time.Second

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = gorm.Open(postgres.Open(ds.database), config)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if pingErr := sqlDB.Ping(); pingErr == nil {
					return db, nil
				} else {
					err = pingErr
				}
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			break
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)
		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	return nil, err
}

func (ds *DatabaseService) Shutdown() {
}

func (ds *DatabaseService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound // 404
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict // 409
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest // 400
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError // 500
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "duplicate key value") {
			statusCode = http.StatusConflict // 409
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "no such table") {
			statusCode = http.StatusInternalServerError // 500
			errorType = "SCHEMA_ERROR"
		} else {
			statusCode = http.StatusInternalServerError // 500
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}
