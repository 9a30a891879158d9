package research

import "time"

// ResearchFinding is a synthesized result tied to a project. Confidence
// is contractually in [0,1] but the store does not enforce it; callers
// must not rely on store-side clamping.
type ResearchFinding struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID       uint        `gorm:"not null;index" json:"project_id"`
	Title           string      `gorm:"size:500;not null" json:"title"`
	Content         string      `gorm:"type:text;not null" json:"content"`
	Category        string      `gorm:"size:100" json:"category"`
	Confidence      float64     `json:"confidence"`
	SourceDocuments DocumentIDs `gorm:"type:text" json:"source_documents,omitempty"`
	Tags            string      `gorm:"size:1000" json:"tags"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ResearchFinding) TableName() string { return "research_findings" }
