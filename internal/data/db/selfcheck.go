package db

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
)

// SelfCheck resolves the store target, opens it, probes liveness, and
// creates the schema. Failure policy is asymmetric: on a hosted
// deployment (Railway markers present) failures are downgraded to
// warnings and the process continues without a verified store, favoring
// availability; locally the error is returned so the operator notices
// immediately. A missing driver is always a non-fatal capability
// downgrade. A nil, nil result means "run without persistence".
func SelfCheck(log *logger.Logger) (*gorm.DB, error) {
	log.Info("Starting database self-check...")

	dsn := ResolveDSN(log)
	log.Info("Resolved database target", "dsn", RedactDSN(dsn))

	gdb, err := Open(dsn, log)
	if err != nil {
		if errors.Is(err, ErrUnsupportedDriver) {
			log.Warn("Database driver not available, persistence disabled", "error", err)
			return nil, nil
		}
		if hostedDeployment() {
			warnAndContinue(log, err)
			return nil, nil
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), AcquireTimeout)
	defer cancel()

	if err := Ping(ctx, gdb); err != nil {
		if hostedDeployment() {
			// Keep the lazily-connecting handle so requests recover once
			// the store comes back.
			warnAndContinue(log, err)
			return gdb, nil
		}
		return nil, fmt.Errorf("database liveness check: %w", err)
	}

	if err := AutoMigrateAll(gdb); err != nil {
		if hostedDeployment() {
			warnAndContinue(log, err)
			return gdb, nil
		}
		return nil, fmt.Errorf("create schema: %w", err)
	}

	log.Info("Database self-check complete")
	return gdb, nil
}

// hostedDeployment reports whether the process runs unattended on a
// hosting platform, detected via Railway environment markers.
func hostedDeployment() bool {
	return os.Getenv("RAILWAY_ENVIRONMENT") != "" || os.Getenv("RAILWAY_PROJECT_ID") != ""
}

func warnAndContinue(log *logger.Logger, err error) {
	log.Warn("Database self-check failed, continuing without verified store", "error", err)
	log.Warn("Check that the database service is attached and the RESEARCH_DB_* variables are set")
}
