package models

// File reference statuses.
const (
	FileStatusPending = "pending"
	FileStatusActive  = "active"
)

// FileReferenceModel tracks an uploaded object until a record points at it.
// Pending references older than the cleanup window are orphans.
type FileReferenceModel struct {
	Base
	FileURL   string `json:"file_url"   gorm:"type:varchar(512);index"`
	FileName  string `json:"file_name"`
	ObjectKey string `json:"object_key" gorm:"type:varchar(512)"`
	Storage   string `json:"storage"`
	Size      int64  `json:"size"`
	Status    string `json:"status"     gorm:"index;default:pending"`
}

func (FileReferenceModel) TableName() string { return "file_references" }
