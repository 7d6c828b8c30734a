package models

import (
	"time"

	"gorm.io/datatypes"
)

// Paper represents a publication owned by a locally persisted Scholar.
// CreateTime carries the provider's original creation timestamp verbatim
// (string form); CreatedAt/UpdatedAt are local bookkeeping.
type Paper struct {
	ID          uint           `gorm:"primaryKey;column:id" json:"id"`
	AminerID    string         `gorm:"column:aminer_id;size:64;uniqueIndex;not null" json:"aminer_id"`
	ScholarID   uint           `gorm:"column:scholar_id;index;not null" json:"scholar_id"`
	Title       string         `gorm:"column:title;size:512;not null" json:"title"`
	Abstract    string         `gorm:"column:abstract;type:text" json:"abstract"`
	Authors     datatypes.JSON `gorm:"column:authors" json:"authors,omitempty"`
	Year        int            `gorm:"column:year" json:"year"`
	Lang        string         `gorm:"column:lang;size:16" json:"lang"`
	NumCitation int            `gorm:"column:num_citation" json:"num_citation"`
	PDF         string         `gorm:"column:pdf;size:512" json:"pdf"`
	URLs        datatypes.JSON `gorm:"column:urls" json:"urls,omitempty"`
	Versions    datatypes.JSON `gorm:"column:versions" json:"versions,omitempty"`
	CreateTime  string         `gorm:"column:create_time;size:32" json:"create_time"`
	UpdateTimes datatypes.JSON `gorm:"column:update_times" json:"update_times,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name used by Paper to `papers`.
func (Paper) TableName() string {
	return "papers"
}
