package models

import (
	"time"

	"gorm.io/datatypes"
)

// Scholar represents a researcher persisted from the AMiner person detail API.
// Open-ended provider blocks (indices, links, profile, tags) are stored as JSON
// columns because their schemas are not contractually stable.
type Scholar struct {
	ID          uint           `gorm:"primaryKey;column:id" json:"id"`
	AminerID    string         `gorm:"column:aminer_id;size:64;uniqueIndex;not null" json:"aminer_id"`
	Name        string         `gorm:"column:name;size:128;not null" json:"name"`
	NameZh      string         `gorm:"column:name_zh;size:128" json:"name_zh"`
	Avatar      string         `gorm:"column:avatar;size:512" json:"avatar"`
	Nation      string         `gorm:"column:nation;size:64" json:"nation"`
	Indices     datatypes.JSON `gorm:"column:indices" json:"indices,omitempty"`
	Links       datatypes.JSON `gorm:"column:links" json:"links,omitempty"`
	Profile     datatypes.JSON `gorm:"column:profile" json:"profile,omitempty"`
	Tags        datatypes.JSON `gorm:"column:tags" json:"tags,omitempty"`
	TagsScore   datatypes.JSON `gorm:"column:tags_score" json:"tags_score,omitempty"`
	TagsZh      datatypes.JSON `gorm:"column:tags_zh" json:"tags_zh,omitempty"`
	NumFollowed int            `gorm:"column:num_followed" json:"num_followed"`
	NumUpvoted  int            `gorm:"column:num_upvoted" json:"num_upvoted"`
	NumViewed   int            `gorm:"column:num_viewed" json:"num_viewed"`
	Gender      string         `gorm:"column:gender;size:16" json:"gender"`
	Homepage    string         `gorm:"column:homepage;size:256" json:"homepage"`
	Position    string         `gorm:"column:position;size:128" json:"position"`
	PositionZh  string         `gorm:"column:position_zh;size:128" json:"position_zh"`
	Work        string         `gorm:"column:work;type:text" json:"work"`
	WorkZh      string         `gorm:"column:work_zh;type:text" json:"work_zh"`
	Note        string         `gorm:"column:note;type:text" json:"note"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relations
	Papers  []Paper  `gorm:"foreignKey:ScholarID;constraint:OnDelete:CASCADE" json:"papers,omitempty"`
	Patents []Patent `gorm:"foreignKey:ScholarID;constraint:OnDelete:CASCADE" json:"patents,omitempty"`
}

// TableName overrides the table name used by Scholar to `scholars`.
func (Scholar) TableName() string {
	return "scholars"
}
