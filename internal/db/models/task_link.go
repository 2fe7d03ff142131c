package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// LinkType represents the kind of relationship between two tasks
type LinkType string

// Link type constants
const (
	// LinkTypeBlocks indicates the source task blocks the destination task
	LinkTypeBlocks LinkType = "blocks"
	// LinkTypeDependsOn indicates the source task depends on the destination task
	LinkTypeDependsOn LinkType = "depends_on"
	// LinkTypeRelates indicates a loose association between the two tasks
	LinkTypeRelates LinkType = "relates"
)

// ParseLinkType converts a string to a LinkType
func ParseLinkType(str string) (LinkType, error) {
	switch str {
	case string(LinkTypeBlocks):
		return LinkTypeBlocks, nil
	case string(LinkTypeDependsOn):
		return LinkTypeDependsOn, nil
	case string(LinkTypeRelates):
		return LinkTypeRelates, nil
	default:
		return "", fmt.Errorf("invalid link type: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for LinkType
func (l *LinkType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	linkType, err := ParseLinkType(str)
	if err != nil {
		return err
	}

	*l = linkType
	return nil
}

// TaskLink is a directed edge between two tasks. The (src, dst, type)
// triple is unique; the index backstops the application-level check.
type TaskLink struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SrcTaskID uint      `json:"src_task" gorm:"not null; index; uniqueIndex:idx_task_links_edge"`
	DstTaskID uint      `json:"dst_task" gorm:"not null; index; uniqueIndex:idx_task_links_edge"`
	LinkType  LinkType  `json:"link_type" gorm:"not null; uniqueIndex:idx_task_links_edge"`
	CreatedAt time.Time `json:"created_at"`
}
