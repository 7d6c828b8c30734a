package services

import (
	"log"

	"scholar-monitor-api/config"
	"scholar-monitor-api/models"

	"gorm.io/gorm"
)

// SyncLogService lists the audit trail written by the persistence services.
type SyncLogService struct {
	db *gorm.DB
}

func NewSyncLogService(db *gorm.DB) *SyncLogService {
	if db == nil {
		db = config.DB
	}
	return &SyncLogService{db: db}
}

// List returns one page of audit rows, newest first, optionally narrowed to
// a scholar.
func (s *SyncLogService) List(scholarID uint, size, offset int) ([]models.SyncLog, int64, error) {
	size, offset = normalizePage(size, offset)

	q := s.db.Model(&models.SyncLog{})
	if scholarID != 0 {
		q = q.Where("scholar_id = ?", scholarID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.SyncLog
	if err := q.Order("id DESC").Limit(size).Offset(offset).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// recordSyncLog writes one audit row. Failures are logged, never surfaced:
// audit bookkeeping must not fail the triggering request.
func recordSyncLog(db *gorm.DB, scholarID uint, action, status, message string) {
	entry := &models.SyncLog{
		ScholarID: scholarID,
		Action:    action,
		Status:    status,
		Message:   message,
	}
	if err := db.Create(entry).Error; err != nil {
		log.Printf("failed to record sync log for scholar %d: %v", scholarID, err)
	}
}
