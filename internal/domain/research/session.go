package research

import "time"

// ResearchSession is one conversational research session under a
// project. SessionID carries the caller's external thread identifier;
// uniqueness is the caller's concern, not enforced here.
type ResearchSession struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	SessionID string    `gorm:"size:500;not null;index" json:"session_id"`
	Title     string    `gorm:"size:500" json:"title"`
	Status    string    `gorm:"size:50;not null;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// references:ID is explicit because SessionID would otherwise be an
	// ambiguous match against the external thread identifier column.
	Messages []SessionMessage `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ResearchSession) TableName() string { return "research_sessions" }
