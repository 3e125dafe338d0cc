package editor

import (
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/pkg/idgen"
)

// DefaultStars is the rating of a newly added hotel.
const DefaultStars = "3"

func NewHotel() models.HotelDetail {
	return models.HotelDetail{ID: idgen.New(), Stars: DefaultStars, Images: []string{}}
}

func AddHotel(hotels []models.HotelDetail) []models.HotelDetail {
	return Add(hotels, NewHotel())
}

func RemoveHotel(hotels []models.HotelDetail, id string) []models.HotelDetail {
	return Remove(hotels, id)
}

func MoveHotelUp(hotels []models.HotelDetail, i int) []models.HotelDetail {
	return MoveUp(hotels, i)
}

func MoveHotelDown(hotels []models.HotelDetail, i int) []models.HotelDetail {
	return MoveDown(hotels, i)
}

func UpdateHotel(hotels []models.HotelDetail, id, field string, value any) ([]models.HotelDetail, error) {
	return Update(hotels, id, field, value)
}

func NormalizeHotels(hotels []models.HotelDetail) []models.HotelDetail {
	return EnsureIDs(hotels, func(h *models.HotelDetail, id string) { h.ID = id })
}
