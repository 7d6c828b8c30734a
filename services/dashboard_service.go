package services

import (
	"math"
	"time"

	"scholar-monitor-api/config"
	"scholar-monitor-api/models"

	"gorm.io/gorm"
)

// DashboardStats is the flat counter block consumed by the dashboard page.
type DashboardStats struct {
	TotalScholars    int64   `json:"totalScholars"`
	TotalPapers      int64   `json:"totalPapers"`
	TotalPatents     int64   `json:"totalPatents"`
	RecentUpdates    int64   `json:"recentUpdates"`
	TotalScholarsMoM float64 `json:"totalScholarsMoM"`
	TotalPapersMoM   float64 `json:"totalPapersMoM"`
	TotalPatentsMoM  float64 `json:"totalPatentsMoM"`
}

// DashboardService computes entity totals, month-over-month deltas, and
// today's creation counts.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	if db == nil {
		db = config.DB
	}
	return &DashboardService{db: db}
}

// Stats buckets creation timestamps against calendar-month boundaries
// relative to now. recentUpdates sums today's created rows across the three
// entity types.
func (s *DashboardService) Stats(now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	scholars, err := s.entityCounts(&models.Scholar{}, now)
	if err != nil {
		return nil, err
	}
	papers, err := s.entityCounts(&models.Paper{}, now)
	if err != nil {
		return nil, err
	}
	patents, err := s.entityCounts(&models.Patent{}, now)
	if err != nil {
		return nil, err
	}

	stats.TotalScholars = scholars.total
	stats.TotalPapers = papers.total
	stats.TotalPatents = patents.total
	stats.TotalScholarsMoM = momPercent(scholars.thisMonth, scholars.prevMonth)
	stats.TotalPapersMoM = momPercent(papers.thisMonth, papers.prevMonth)
	stats.TotalPatentsMoM = momPercent(patents.thisMonth, patents.prevMonth)
	stats.RecentUpdates = scholars.today + papers.today + patents.today

	return stats, nil
}

type entityCounts struct {
	total     int64
	thisMonth int64
	prevMonth int64
	today     int64
}

func (s *DashboardService) entityCounts(model interface{}, now time.Time) (*entityCounts, error) {
	monthStart := startOfMonth(now)
	prevStart := monthStart.AddDate(0, -1, 0)
	dayStart := startOfDay(now)

	counts := &entityCounts{}
	if err := s.db.Model(model).Count(&counts.total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(model).Where("created_at >= ?", monthStart).Count(&counts.thisMonth).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(model).Where("created_at >= ? AND created_at < ?", prevStart, monthStart).
		Count(&counts.prevMonth).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(model).Where("created_at >= ?", dayStart).Count(&counts.today).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// momPercent computes (current-previous)/max(previous,1)*100 rounded to one
// decimal. The max(previous,1) guard understates growth from a zero baseline
// (0 -> n reads as n*100%); that quirk is part of the dashboard contract.
func momPercent(current, previous int64) float64 {
	base := previous
	if base < 1 {
		base = 1
	}
	return math.Round(float64(current-previous)/float64(base)*1000) / 10
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
