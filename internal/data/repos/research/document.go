package research

import (
	"context"

	"gorm.io/gorm"

	types "github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
)

type DocumentRepo interface {
	Create(ctx context.Context, document *types.ResearchDocument) error
	GetByID(ctx context.Context, id uint) (*types.ResearchDocument, error)
	ListByProject(ctx context.Context, projectID uint) ([]*types.ResearchDocument, error)
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, log *logger.Logger) DocumentRepo {
	return &documentRepo{db: db, log: log.With("repo", "DocumentRepo")}
}

func (r *documentRepo) Create(ctx context.Context, document *types.ResearchDocument) error {
	return r.db.WithContext(ctx).Create(document).Error
}

func (r *documentRepo) GetByID(ctx context.Context, id uint) (*types.ResearchDocument, error) {
	var out types.ResearchDocument
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *documentRepo) ListByProject(ctx context.Context, projectID uint) ([]*types.ResearchDocument, error) {
	var out []*types.ResearchDocument
	if err := r.db.WithContext(ctx).
		Model(&types.ResearchDocument{}).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
