package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
	"github.com/bulldozer-ai/bulldozer-backend/internal/utils"
)

// Pool parameters for the networked (Postgres) path. Acquire timeout is
// carried as the per-operation context deadline: database/sql blocks on
// checkout until the context expires.
const (
	PoolSize        = 10
	MaxOverflow     = 20
	AcquireTimeout  = 30 * time.Second
	ConnMaxLifetime = time.Hour
)

// ErrUnsupportedDriver marks a DSN whose engine has no compiled-in
// driver. Treated as a permanent capability downgrade, not a fault.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// ErrUnavailable is returned by the persistence service when the
// process is running without an initialized store.
var ErrUnavailable = errors.New("database not initialized")

// ResolveDSN builds the connection string from RESEARCH_DB_URL, or from
// the discrete RESEARCH_DB_* variables when no full URL is set.
func ResolveDSN(log *logger.Logger) string {
	if full := utils.GetEnv("RESEARCH_DB_URL", "", log); full != "" {
		return full
	}
	host := utils.GetEnv("RESEARCH_DB_HOST", "localhost", log)
	port := utils.GetEnv("RESEARCH_DB_PORT", "5432", log)
	name := utils.GetEnv("RESEARCH_DB_NAME", "deerflow_research", log)
	user := utils.GetEnv("RESEARCH_DB_USER", "postgres", log)
	password := utils.GetEnv("RESEARCH_DB_PASSWORD", "postgres", log)
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
}

// RedactDSN strips credentials before the DSN reaches any log output.
func RedactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	u.User = url.UserPassword("***", "***")
	return u.String()
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func isSQLite(dsn string) bool {
	if strings.HasPrefix(dsn, "sqlite://") || strings.HasPrefix(dsn, "sqlite:") {
		return true
	}
	// A bare path (or :memory:) is treated as a SQLite target.
	return !strings.Contains(dsn, "://")
}

// sqliteDSN normalizes a sqlite target and keeps foreign keys enforced,
// which the cascade semantics depend on.
func sqliteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	dsn = strings.TrimPrefix(dsn, "sqlite:")
	if strings.Contains(dsn, "_foreign_keys=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Open opens a gorm handle for the resolved DSN. The Postgres path gets
// the bounded pool (PoolSize steady + MaxOverflow, hourly recycle); any
// other supported target gets a plain handle. Connection establishment
// is lazy so a down store degrades per-request instead of at startup.
func Open(dsn string, logg *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch {
	case isPostgres(dsn):
		dialector = postgres.Open(dsn)
	case isSQLite(dsn):
		dialector = sqlite.Open(sqliteDSN(dsn))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, RedactDSN(dsn))
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:               gormLog,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	if isPostgres(dsn) {
		sqlDB.SetMaxIdleConns(PoolSize)
		sqlDB.SetMaxOpenConns(PoolSize + MaxOverflow)
		sqlDB.SetConnMaxLifetime(ConnMaxLifetime)
	}

	if logg != nil {
		logg.Debug("Opened database handle", "dsn", RedactDSN(dsn))
	}
	return gdb, nil
}

// Ping issues the trivial liveness query used by the self-check.
func Ping(ctx context.Context, gdb *gorm.DB) error {
	var one int
	return gdb.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}
