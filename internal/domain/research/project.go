package research

import "time"

// ResearchProject is the top-level unit of ownership: deleting a project
// cascades to its documents, findings, and sessions (and through them to
// chunks and messages).
type ResearchProject struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:500;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:50;not null;default:'active'" json:"status"`
	Tags        string    `gorm:"size:1000" json:"tags"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Documents []ResearchDocument `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Findings  []ResearchFinding  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Sessions  []ResearchSession  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ResearchProject) TableName() string { return "research_projects" }
