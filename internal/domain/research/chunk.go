package research

import (
	"time"

	"gorm.io/datatypes"
)

// DocumentChunk is one retrieval unit of a document. Chunks are written
// during ingestion and never updated; ordering is by ChunkIndex, not
// creation time.
type DocumentChunk struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	DocumentID uint           `gorm:"not null;index" json:"document_id"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	ChunkIndex int            `gorm:"index" json:"chunk_index"`
	Embedding  datatypes.JSON `gorm:"type:text" json:"embedding,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (DocumentChunk) TableName() string { return "document_chunks" }
