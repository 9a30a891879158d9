package research

import (
	"context"

	"gorm.io/gorm"

	types "github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
)

type SessionRepo interface {
	Create(ctx context.Context, session *types.ResearchSession) error
	GetByID(ctx context.Context, id uint) (*types.ResearchSession, error)
	ListByProject(ctx context.Context, projectID uint) ([]*types.ResearchSession, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, log *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: log.With("repo", "SessionRepo")}
}

func (r *sessionRepo) Create(ctx context.Context, session *types.ResearchSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id uint) (*types.ResearchSession, error) {
	var out types.ResearchSession
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sessionRepo) ListByProject(ctx context.Context, projectID uint) ([]*types.ResearchSession, error) {
	var out []*types.ResearchSession
	if err := r.db.WithContext(ctx).
		Model(&types.ResearchSession{}).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
