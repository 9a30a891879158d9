package db

import (
	"gorm.io/gorm"

	"github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
)

// AutoMigrateAll idempotently creates the research tables. Foreign key
// constraints stay enabled during migration: ON DELETE CASCADE from
// project downward is load-bearing.
func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&research.ResearchProject{},
		&research.ResearchDocument{},
		&research.DocumentChunk{},
		&research.ResearchFinding{},
		&research.ResearchSession{},
		&research.SessionMessage{},
	)
}
