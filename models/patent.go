package models

import (
	"time"

	"gorm.io/datatypes"
)

// Patent represents a patent associated with a Scholar as inventor.
// Title and Abstract are bilingual provider structures ({"en": [...], "zh": [...]})
// kept as JSON; callers resolve a display form via the activity feed rules.
type Patent struct {
	ID          uint           `gorm:"primaryKey;column:id" json:"id"`
	AminerID    string         `gorm:"column:aminer_id;size:64;uniqueIndex;not null" json:"aminer_id"`
	ScholarID   uint           `gorm:"column:scholar_id;index;not null" json:"scholar_id"`
	Title       datatypes.JSON `gorm:"column:title" json:"title,omitempty"`
	Abstract    datatypes.JSON `gorm:"column:abstract" json:"abstract,omitempty"`
	AppDate     string         `gorm:"column:app_date;size:32" json:"app_date"`
	AppNum      string         `gorm:"column:app_num;size:64" json:"app_num"`
	Applicant   datatypes.JSON `gorm:"column:applicant" json:"applicant,omitempty"`
	Assignee    datatypes.JSON `gorm:"column:assignee" json:"assignee,omitempty"`
	Country     string         `gorm:"column:country;size:16" json:"country"`
	CPC         datatypes.JSON `gorm:"column:cpc" json:"cpc,omitempty"`
	Inventor    datatypes.JSON `gorm:"column:inventor" json:"inventor,omitempty"`
	IPC         datatypes.JSON `gorm:"column:ipc" json:"ipc,omitempty"`
	IPCR        datatypes.JSON `gorm:"column:ipcr" json:"ipcr,omitempty"`
	PCT         datatypes.JSON `gorm:"column:pct" json:"pct,omitempty"`
	Priority    datatypes.JSON `gorm:"column:priority" json:"priority,omitempty"`
	PubDate     string         `gorm:"column:pub_date;size:32" json:"pub_date"`
	PubKind     string         `gorm:"column:pub_kind;size:32" json:"pub_kind"`
	PubNum      string         `gorm:"column:pub_num;size:64" json:"pub_num"`
	PubSearchID string         `gorm:"column:pub_search_id;size:64" json:"pub_search_id"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name used by Patent to `patents`.
func (Patent) TableName() string {
	return "patents"
}
