package research

import (
	"context"

	"gorm.io/gorm"

	types "github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
)

type ChunkRepo interface {
	CreateBatch(ctx context.Context, chunks []*types.DocumentChunk) error
	// ListByDocument orders by chunk index, not creation time.
	ListByDocument(ctx context.Context, documentID uint) ([]*types.DocumentChunk, error)
}

type chunkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChunkRepo(db *gorm.DB, log *logger.Logger) ChunkRepo {
	return &chunkRepo{db: db, log: log.With("repo", "ChunkRepo")}
}

func (r *chunkRepo) CreateBatch(ctx context.Context, chunks []*types.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&chunks).Error
}

func (r *chunkRepo) ListByDocument(ctx context.Context, documentID uint) ([]*types.DocumentChunk, error) {
	var out []*types.DocumentChunk
	if err := r.db.WithContext(ctx).
		Model(&types.DocumentChunk{}).
		Where("document_id = ?", documentID).
		Order("chunk_index ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
