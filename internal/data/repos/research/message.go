package research

import (
	"context"

	"gorm.io/gorm"

	types "github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
)

type MessageRepo interface {
	Create(ctx context.Context, message *types.SessionMessage) error
	ListBySession(ctx context.Context, sessionID uint) ([]*types.SessionMessage, error)
	CountBySession(ctx context.Context, sessionID uint) (int64, error)
}

type messageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, log *logger.Logger) MessageRepo {
	return &messageRepo{db: db, log: log.With("repo", "MessageRepo")}
}

func (r *messageRepo) Create(ctx context.Context, message *types.SessionMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListBySession returns the transcript in chronological order.
func (r *messageRepo) ListBySession(ctx context.Context, sessionID uint) ([]*types.SessionMessage, error) {
	var out []*types.SessionMessage
	if err := r.db.WithContext(ctx).
		Model(&types.SessionMessage{}).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *messageRepo) CountBySession(ctx context.Context, sessionID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&types.SessionMessage{}).
		Where("session_id = ?", sessionID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
