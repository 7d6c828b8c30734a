package services

import (
	"errors"
	"fmt"

	"scholar-monitor-api/config"
	"scholar-monitor-api/models"

	"gorm.io/gorm"
)

// PaperFilter narrows paginated paper listings. Zero values mean "no filter".
type PaperFilter struct {
	ScholarID   uint
	Year        int
	Author      string
	Lang        string
	MinCitation *int
	MaxCitation *int
}

// PaperService performs CRUD and batch inserts over the papers table.
type PaperService struct {
	db *gorm.DB
}

func NewPaperService(db *gorm.DB) *PaperService {
	if db == nil {
		db = config.DB
	}
	return &PaperService{db: db}
}

// Create inserts a paper after checking the owning scholar exists.
func (s *PaperService) Create(paper *models.Paper) error {
	if err := s.validate(paper); err != nil {
		return err
	}

	if err := s.db.Create(paper).Error; err != nil {
		return translateStorageError(err)
	}
	return nil
}

// BatchCreate inserts all papers or none: any duplicate aminer_id, against
// the table or within the batch, rolls back every row.
func (s *PaperService) BatchCreate(papers []models.Paper) error {
	if len(papers) == 0 {
		return newValidationError("papers", "batch must not be empty")
	}

	for i := range papers {
		if err := s.validate(&papers[i]); err != nil {
			return err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range papers {
			if err := tx.Create(&papers[i]).Error; err != nil {
				return translateStorageError(err)
			}
		}
		return nil
	})
	if err != nil {
		recordSyncLog(s.db, papers[0].ScholarID, "import", "fail", fmt.Sprintf("paper batch rejected: %v", err))
		return err
	}

	recordSyncLog(s.db, papers[0].ScholarID, "import", "success", fmt.Sprintf("%d papers imported", len(papers)))
	return nil
}

// Get returns a paper by local id.
func (s *PaperService) Get(id uint) (*models.Paper, error) {
	var paper models.Paper
	if err := s.db.First(&paper, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("paper %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &paper, nil
}

// Update applies a partial update: only the supplied columns change.
func (s *PaperService) Update(id uint, updates map[string]interface{}) (*models.Paper, error) {
	paper, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(paper).Updates(updates).Error; err != nil {
			return nil, translateStorageError(err)
		}
	}

	return s.Get(id)
}

// Delete removes a paper by local id.
func (s *PaperService) Delete(id uint) error {
	paper, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(paper).Error
}

// List returns one filtered page ordered by local id ascending, plus the
// total count of matching rows.
func (s *PaperService) List(filter PaperFilter, size, offset int) ([]models.Paper, int64, error) {
	size, offset = normalizePage(size, offset)

	q := s.db.Model(&models.Paper{})
	if filter.ScholarID != 0 {
		q = q.Where("scholar_id = ?", filter.ScholarID)
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Author != "" {
		// JSON columns need the cast before LIKE on MySQL
		q = q.Where("CAST(authors AS CHAR) LIKE ?", "%"+filter.Author+"%")
	}
	if filter.Lang != "" {
		q = q.Where("lang = ?", filter.Lang)
	}
	if filter.MinCitation != nil {
		q = q.Where("num_citation >= ?", *filter.MinCitation)
	}
	if filter.MaxCitation != nil {
		q = q.Where("num_citation <= ?", *filter.MaxCitation)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var papers []models.Paper
	if err := q.Order("id ASC").Limit(size).Offset(offset).Find(&papers).Error; err != nil {
		return nil, 0, err
	}
	return papers, total, nil
}

// ListByScholar returns every paper owned by a scholar, unpaginated.
func (s *PaperService) ListByScholar(scholarID uint) ([]models.Paper, error) {
	q := s.db.Model(&models.Paper{})
	if scholarID != 0 {
		q = q.Where("scholar_id = ?", scholarID)
	}

	var papers []models.Paper
	if err := q.Order("id ASC").Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}

func (s *PaperService) validate(paper *models.Paper) error {
	if paper.AminerID == "" {
		return newValidationError("aminer_id", "must not be empty")
	}
	if paper.Title == "" {
		return newValidationError("title", "must not be empty")
	}
	if paper.ScholarID == 0 {
		return newValidationError("scholar_id", "must reference a scholar")
	}

	var count int64
	if err := s.db.Model(&models.Scholar{}).Where("id = ?", paper.ScholarID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("scholar %d: %w", paper.ScholarID, ErrNotFound)
	}
	return nil
}
