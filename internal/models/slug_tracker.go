package models

// SlugTrackerModel remembers a slug a record used to have, so old public
// links still resolve after a rename.
type SlugTrackerModel struct {
	Base
	Slug     string `json:"slug"      gorm:"type:varchar(255);index:idx_slug_type,unique"`
	Type     string `json:"type"      gorm:"type:varchar(32);index:idx_slug_type,unique"`
	TargetID string `json:"target_id" gorm:"type:char(36);index"`
}

func (SlugTrackerModel) TableName() string { return "slug_trackers" }
