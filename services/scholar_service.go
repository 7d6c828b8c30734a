package services

import (
	"errors"
	"fmt"

	"scholar-monitor-api/config"
	"scholar-monitor-api/models"

	"gorm.io/gorm"
)

// ScholarService performs CRUD over the scholars table. Scholar deletion
// cascades to owned papers and patents inside one transaction.
type ScholarService struct {
	db *gorm.DB
}

func NewScholarService(db *gorm.DB) *ScholarService {
	if db == nil {
		db = config.DB
	}
	return &ScholarService{db: db}
}

// Create inserts a scholar. A duplicate aminer_id yields ErrConflict and
// leaves the table untouched.
func (s *ScholarService) Create(scholar *models.Scholar) error {
	if scholar.AminerID == "" {
		return newValidationError("aminer_id", "must not be empty")
	}
	if scholar.Name == "" {
		return newValidationError("name", "must not be empty")
	}

	if err := s.db.Create(scholar).Error; err != nil {
		return translateStorageError(err)
	}

	recordSyncLog(s.db, scholar.ID, "add", "success", fmt.Sprintf("scholar %s persisted", scholar.AminerID))
	return nil
}

// Get returns a scholar by local id.
func (s *ScholarService) Get(id uint) (*models.Scholar, error) {
	var scholar models.Scholar
	if err := s.db.First(&scholar, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("scholar %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &scholar, nil
}

// Update applies a partial update: only the supplied columns change.
func (s *ScholarService) Update(id uint, updates map[string]interface{}) (*models.Scholar, error) {
	scholar, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(scholar).Updates(updates).Error; err != nil {
			return nil, translateStorageError(err)
		}
	}

	return s.Get(id)
}

// Delete removes the scholar and every paper and patent it owns.
func (s *ScholarService) Delete(id uint) error {
	scholar, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scholar_id = ?", id).Delete(&models.Paper{}).Error; err != nil {
			return err
		}
		if err := tx.Where("scholar_id = ?", id).Delete(&models.Patent{}).Error; err != nil {
			return err
		}
		return tx.Delete(scholar).Error
	})
	if err != nil {
		return err
	}

	recordSyncLog(s.db, id, "delete", "success", fmt.Sprintf("scholar %s removed with owned records", scholar.AminerID))
	return nil
}

// List returns one page of scholars, most recently assigned first, plus the
// total row count.
func (s *ScholarService) List(size, offset int) ([]models.Scholar, int64, error) {
	size, offset = normalizePage(size, offset)

	var total int64
	if err := s.db.Model(&models.Scholar{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var scholars []models.Scholar
	if err := s.db.Order("id DESC").Limit(size).Offset(offset).Find(&scholars).Error; err != nil {
		return nil, 0, err
	}
	return scholars, total, nil
}

// translateStorageError maps driver-level uniqueness violations onto
// ErrConflict; anything else passes through untouched.
func translateStorageError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("aminer_id already exists: %w", ErrConflict)
	}
	return err
}

func normalizePage(size, offset int) (int, int) {
	if size <= 0 {
		size = 10
	}
	if offset < 0 {
		offset = 0
	}
	return size, offset
}
