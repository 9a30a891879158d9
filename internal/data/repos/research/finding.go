package research

import (
	"context"

	"gorm.io/gorm"

	types "github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
)

type FindingRepo interface {
	Create(ctx context.Context, finding *types.ResearchFinding) error
	ListByProject(ctx context.Context, projectID uint) ([]*types.ResearchFinding, error)
}

type findingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFindingRepo(db *gorm.DB, log *logger.Logger) FindingRepo {
	return &findingRepo{db: db, log: log.With("repo", "FindingRepo")}
}

func (r *findingRepo) Create(ctx context.Context, finding *types.ResearchFinding) error {
	return r.db.WithContext(ctx).Create(finding).Error
}

func (r *findingRepo) ListByProject(ctx context.Context, projectID uint) ([]*types.ResearchFinding, error) {
	var out []*types.ResearchFinding
	if err := r.db.WithContext(ctx).
		Model(&types.ResearchFinding{}).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
