package services

import (
	"encoding/json"
	"sort"
	"time"

	"scholar-monitor-api/config"
	"scholar-monitor-api/models"

	"gorm.io/gorm"
)

const defaultActivityLimit = 10

// activityZone is the fixed display offset for activity timestamps.
var activityZone = time.FixedZone("UTC+8", 8*60*60)

// Activity is a read-only projection over the three entity tables: one entry
// per row, never persisted, recomputed on every request.
type Activity struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Name   string `json:"name"`
	Time   string `json:"time"`

	at time.Time
}

// ActivityService builds the merged recent-activity feed.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	if db == nil {
		db = config.DB
	}
	return &ActivityService{db: db}
}

// Recent merges the newest scholars, papers, and patents into one feed
// sorted descending by timestamp and truncated to limit (default 10).
func (s *ActivityService) Recent(limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	activities := make([]Activity, 0, limit*3)

	var scholars []models.Scholar
	if err := s.db.Order("updated_at DESC").Limit(limit).Find(&scholars).Error; err != nil {
		return nil, err
	}
	for _, sc := range scholars {
		name := sc.NameZh
		if name == "" {
			name = sc.Name
		}
		activities = append(activities, newActivity("scholar", name, sc.CreatedAt, sc.UpdatedAt))
	}

	var papers []models.Paper
	if err := s.db.Order("updated_at DESC").Limit(limit).Find(&papers).Error; err != nil {
		return nil, err
	}
	for _, p := range papers {
		activities = append(activities, newActivity("paper", p.Title, p.CreatedAt, p.UpdatedAt))
	}

	var patents []models.Patent
	if err := s.db.Order("updated_at DESC").Limit(limit).Find(&patents).Error; err != nil {
		return nil, err
	}
	for _, p := range patents {
		activities = append(activities, newActivity("patent", resolveBilingualText(p.Title), p.CreatedAt, p.UpdatedAt))
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].at.After(activities[j].at)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func newActivity(kind, name string, createdAt, updatedAt time.Time) Activity {
	action := "updated"
	if !updatedAt.After(createdAt) {
		action = "created"
	}
	return Activity{
		Type:   kind,
		Action: action,
		Name:   name,
		Time:   updatedAt.In(activityZone).Format(time.RFC3339),
		at:     updatedAt,
	}
}

// resolveBilingualText extracts a display string from a provider bilingual
// block. Fallback order: zh list, zh string, en list, en string, then the
// raw serialized form. Double-encoded blocks (a JSON string holding the
// object) are unwrapped one level first.
func resolveBilingualText(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}

	if text, ok := value.(string); ok {
		var nested interface{}
		if err := json.Unmarshal([]byte(text), &nested); err != nil {
			return text
		}
		value = nested
	}

	block, ok := value.(map[string]interface{})
	if !ok {
		return string(raw)
	}

	for _, lang := range []string{"zh", "en"} {
		switch v := block[lang].(type) {
		case []interface{}:
			for _, item := range v {
				if text, ok := item.(string); ok && text != "" {
					return text
				}
			}
		case string:
			if v != "" {
				return v
			}
		}
	}
	return string(raw)
}
