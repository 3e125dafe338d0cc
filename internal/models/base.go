package models

import (
	"time"

	"github.com/tripdesk/crm-admin/internal/pkg/idgen"
	"gorm.io/gorm"
)

// Base is the base model for all entities.
type Base struct {
	ID        string         `json:"id"       gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time      `json:"created"`
	UpdatedAt time.Time      `json:"modified"`
	DeletedAt gorm.DeletedAt `json:"-"        gorm:"index"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = idgen.New()
	}
	return nil
}

// GetID returns the record identifier.
func (b *Base) GetID() string { return b.ID }

// SetID assigns the record identifier.
func (b *Base) SetID(id string) { b.ID = id }

// Touch stamps the timestamps the way gorm would on create or update.
func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
