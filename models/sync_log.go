package models

import "time"

// SyncLog is the audit trail for persistence actions against a scholar.
// ScholarID is intentionally not a foreign key: audit rows outlive the
// scholar they describe (a "delete" entry references an id that is gone).
type SyncLog struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	ScholarID uint      `gorm:"column:scholar_id;index;not null" json:"scholar_id"`
	Action    string    `gorm:"column:action;size:32;not null" json:"action"`
	Status    string    `gorm:"column:status;size:16;not null" json:"status"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name used by SyncLog to `sync_log`.
func (SyncLog) TableName() string {
	return "sync_log"
}
