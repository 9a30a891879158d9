package research

import "time"

// SessionMessage is one turn of a session transcript. Messages are
// append-only: there is no update path and no update timestamp.
type SessionMessage struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID   uint         `gorm:"not null;index" json:"session_id"`
	Role        string       `gorm:"size:50;not null" json:"role"`
	Content     string       `gorm:"type:text;not null" json:"content"`
	MessageType string       `gorm:"size:50" json:"message_type"`
	ToolCalls   ToolCallList `gorm:"type:text" json:"tool_calls,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (SessionMessage) TableName() string { return "session_messages" }
