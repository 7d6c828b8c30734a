package services

import (
	"errors"
	"fmt"

	"scholar-monitor-api/config"
	"scholar-monitor-api/models"

	"gorm.io/gorm"
)

// Patent publication-status filter values.
const (
	PatentStatusPublished = "published"
	PatentStatusPending   = "pending"
)

// PatentFilter narrows paginated patent listings. Zero values mean "no filter".
type PatentFilter struct {
	ScholarID uint
	Country   string
	Inventor  string
	PubStatus string
}

// PatentService performs CRUD and batch inserts over the patents table.
type PatentService struct {
	db *gorm.DB
}

func NewPatentService(db *gorm.DB) *PatentService {
	if db == nil {
		db = config.DB
	}
	return &PatentService{db: db}
}

// Create inserts a patent after checking the owning scholar exists.
func (s *PatentService) Create(patent *models.Patent) error {
	if err := s.validate(patent); err != nil {
		return err
	}

	if err := s.db.Create(patent).Error; err != nil {
		return translateStorageError(err)
	}
	return nil
}

// BatchCreate inserts all patents or none, mirroring paper batch semantics.
func (s *PatentService) BatchCreate(patents []models.Patent) error {
	if len(patents) == 0 {
		return newValidationError("patents", "batch must not be empty")
	}

	for i := range patents {
		if err := s.validate(&patents[i]); err != nil {
			return err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range patents {
			if err := tx.Create(&patents[i]).Error; err != nil {
				return translateStorageError(err)
			}
		}
		return nil
	})
	if err != nil {
		recordSyncLog(s.db, patents[0].ScholarID, "import", "fail", fmt.Sprintf("patent batch rejected: %v", err))
		return err
	}

	recordSyncLog(s.db, patents[0].ScholarID, "import", "success", fmt.Sprintf("%d patents imported", len(patents)))
	return nil
}

// Get returns a patent by local id.
func (s *PatentService) Get(id uint) (*models.Patent, error) {
	var patent models.Patent
	if err := s.db.First(&patent, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("patent %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &patent, nil
}

// Update applies a partial update: only the supplied columns change.
func (s *PatentService) Update(id uint, updates map[string]interface{}) (*models.Patent, error) {
	patent, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(patent).Updates(updates).Error; err != nil {
			return nil, translateStorageError(err)
		}
	}

	return s.Get(id)
}

// Delete removes a patent by local id.
func (s *PatentService) Delete(id uint) error {
	patent, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(patent).Error
}

// List returns one filtered page ordered by local id ascending, plus the
// total count of matching rows. Publication status derives from pub_num:
// a patent with a publication number is "published", otherwise "pending".
func (s *PatentService) List(filter PatentFilter, size, offset int) ([]models.Patent, int64, error) {
	size, offset = normalizePage(size, offset)

	q := s.db.Model(&models.Patent{})
	if filter.ScholarID != 0 {
		q = q.Where("scholar_id = ?", filter.ScholarID)
	}
	if filter.Country != "" {
		q = q.Where("country = ?", filter.Country)
	}
	if filter.Inventor != "" {
		// JSON columns need the cast before LIKE on MySQL
		q = q.Where("CAST(inventor AS CHAR) LIKE ?", "%"+filter.Inventor+"%")
	}
	switch filter.PubStatus {
	case PatentStatusPublished:
		q = q.Where("pub_num <> ''")
	case PatentStatusPending:
		q = q.Where("pub_num = '' OR pub_num IS NULL")
	case "":
	default:
		return nil, 0, newValidationError("pub_status", "must be published or pending")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patents []models.Patent
	if err := q.Order("id ASC").Limit(size).Offset(offset).Find(&patents).Error; err != nil {
		return nil, 0, err
	}
	return patents, total, nil
}

// ListByScholar returns every patent owned by a scholar, unpaginated.
func (s *PatentService) ListByScholar(scholarID uint) ([]models.Patent, error) {
	q := s.db.Model(&models.Patent{})
	if scholarID != 0 {
		q = q.Where("scholar_id = ?", scholarID)
	}

	var patents []models.Patent
	if err := q.Order("id ASC").Find(&patents).Error; err != nil {
		return nil, err
	}
	return patents, nil
}

func (s *PatentService) validate(patent *models.Patent) error {
	if patent.AminerID == "" {
		return newValidationError("aminer_id", "must not be empty")
	}
	if patent.ScholarID == 0 {
		return newValidationError("scholar_id", "must reference a scholar")
	}

	var count int64
	if err := s.db.Model(&models.Scholar{}).Where("id = ?", patent.ScholarID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("scholar %d: %w", patent.ScholarID, ErrNotFound)
	}
	return nil
}
