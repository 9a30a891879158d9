package research

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Project and session statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Finding categories.
const (
	CategoryFact       = "fact"
	CategoryInsight    = "insight"
	CategoryHypothesis = "hypothesis"
	CategoryConclusion = "conclusion"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message types.
const (
	MessageTypeText       = "text"
	MessageTypeToolCall   = "tool_call"
	MessageTypeToolResult = "tool_result"
)

// DocumentIDs lists the documents a finding was synthesized from. It is
// typed at the service boundary and serialized to JSON text only at the
// storage edge.
type DocumentIDs []int64

func (d DocumentIDs) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *DocumentIDs) Scan(src any) error {
	return scanJSONText(src, d, "DocumentIDs")
}

// ToolCall is one structured tool invocation recorded on a message.
type ToolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Result    string          `json:"result,omitempty"`
}

// ToolCallList stores a message's tool calls as JSON text.
type ToolCallList []ToolCall

func (t ToolCallList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *ToolCallList) Scan(src any) error {
	return scanJSONText(src, t, "ToolCallList")
}

func scanJSONText(src, dst any, what string) error {
	if src == nil {
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan %s: unsupported type %T", what, src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
