package research

import (
	"context"

	"gorm.io/gorm"

	types "github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
)

type ProjectRepo interface {
	Create(ctx context.Context, project *types.ResearchProject) error
	GetByID(ctx context.Context, id uint) (*types.ResearchProject, error)
	List(ctx context.Context) ([]*types.ResearchProject, error)
	// Delete removes the project and, through the cascading foreign
	// keys, everything it owns. Returns false when no row matched.
	Delete(ctx context.Context, id uint) (bool, error)
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, log *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: log.With("repo", "ProjectRepo")}
}

func (r *projectRepo) Create(ctx context.Context, project *types.ResearchProject) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepo) GetByID(ctx context.Context, id uint) (*types.ResearchProject, error) {
	var out types.ResearchProject
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *projectRepo) List(ctx context.Context) ([]*types.ResearchProject, error) {
	var out []*types.ResearchProject
	if err := r.db.WithContext(ctx).
		Model(&types.ResearchProject{}).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *projectRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&types.ResearchProject{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
