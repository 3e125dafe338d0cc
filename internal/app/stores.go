package app

import (
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/store"
	"gorm.io/gorm"
)

// Stores are the repositories behind the admin API.
type Stores struct {
	Activities  store.Repository[models.ActivityModel]
	Transports  store.Repository[models.TransportModel]
	Contents    store.Repository[models.ContentModel]
	HeroSlides  store.Repository[models.HeroSlideModel]
	Itineraries store.Repository[models.ItineraryModel]
	Ledgers     store.Repository[models.LedgerModel]
	Files       store.Repository[models.FileReferenceModel]
	Slugs       store.Repository[models.SlugTrackerModel]
}

// GormStores backs every repository with db.
func GormStores(db *gorm.DB) Stores {
	return Stores{
		Activities:  store.NewGorm[models.ActivityModel](db),
		Transports:  store.NewGorm[models.TransportModel](db),
		Contents:    store.NewGorm[models.ContentModel](db),
		HeroSlides:  store.NewGorm[models.HeroSlideModel](db).OrderBy("display_order ASC, created_at DESC"),
		Itineraries: store.NewGorm[models.ItineraryModel](db),
		Ledgers:     store.NewGorm[models.LedgerModel](db).OrderBy("entry_date DESC, created_at DESC"),
		Files:       store.NewGorm[models.FileReferenceModel](db),
		Slugs:       store.NewGorm[models.SlugTrackerModel](db),
	}
}

// MemoryStores keeps everything in process memory.
func MemoryStores() Stores {
	return Stores{
		Activities:  store.NewMemory[models.ActivityModel](),
		Transports:  store.NewMemory[models.TransportModel](),
		Contents:    store.NewMemory[models.ContentModel](),
		HeroSlides:  store.NewMemory[models.HeroSlideModel](),
		Itineraries: store.NewMemory[models.ItineraryModel](),
		Ledgers:     store.NewMemory[models.LedgerModel](),
		Files:       store.NewMemory[models.FileReferenceModel](),
		Slugs:       store.NewMemory[models.SlugTrackerModel](),
	}
}
