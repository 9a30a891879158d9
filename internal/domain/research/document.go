package research

import (
	"time"

	"gorm.io/datatypes"
)

// ResearchDocument is an ingested source document. VectorID references
// the entry in the external vector index; it is opaque here.
type ResearchDocument struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID    uint           `gorm:"not null;index" json:"project_id"`
	Title        string         `gorm:"size:500;not null" json:"title"`
	Content      string         `gorm:"type:text" json:"content"`
	SourceURL    string         `gorm:"size:2000" json:"source_url"`
	DocumentType string         `gorm:"size:100" json:"document_type"`
	FilePath     string         `gorm:"size:1000" json:"file_path"`
	VectorID     string         `gorm:"size:500" json:"vector_id"`
	Metadata     datatypes.JSON `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Chunks []DocumentChunk `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ResearchDocument) TableName() string { return "research_documents" }
