package editor

import (
	"fmt"

	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/pkg/idgen"
)

// Renumber sets each day's number to its 1-based position.
func Renumber(days []models.DayActivity) []models.DayActivity {
	out := cloneAll(days)
	for i := range out {
		out[i].Day = i + 1
	}
	return out
}

// NewDay returns an empty day with a fresh id.
func NewDay() models.DayActivity {
	return models.DayActivity{
		ID:     idgen.New(),
		Images: []string{},
		Meals:  []models.MealStay{},
		Stays:  []models.MealStay{},
	}
}

func AddDay(days []models.DayActivity) []models.DayActivity {
	return Renumber(Add(days, NewDay()))
}

func RemoveDay(days []models.DayActivity, id string) []models.DayActivity {
	return Renumber(Remove(days, id))
}

func MoveDayUp(days []models.DayActivity, i int) []models.DayActivity {
	return Renumber(MoveUp(days, i))
}

func MoveDayDown(days []models.DayActivity, i int) []models.DayActivity {
	return Renumber(MoveDown(days, i))
}

func UpdateDay(days []models.DayActivity, id, field string, value any) ([]models.DayActivity, error) {
	return Update(days, id, field, value)
}

// ToggleMeal adds the named meal to the day, or removes it when present.
func ToggleMeal(days []models.DayActivity, id, name string) ([]models.DayActivity, error) {
	return toggle(days, id, name, func(d *models.DayActivity) *[]models.MealStay { return &d.Meals })
}

// ToggleStay adds the named stay to the day, or removes it when present.
func ToggleStay(days []models.DayActivity, id, name string) ([]models.DayActivity, error) {
	return toggle(days, id, name, func(d *models.DayActivity) *[]models.MealStay { return &d.Stays })
}

func toggle(days []models.DayActivity, id, name string, pick func(*models.DayActivity) *[]models.MealStay) ([]models.DayActivity, error) {
	out := cloneAll(days)
	i := Index(out, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	list := pick(&out[i])
	for j, m := range *list {
		if m.Name == name {
			next := make([]models.MealStay, 0, len(*list)-1)
			next = append(next, (*list)[:j]...)
			*list = append(next, (*list)[j+1:]...)
			return out, nil
		}
	}
	*list = append(*list, models.MealStay{Name: name, Images: []string{""}})
	return out, nil
}

// SetMealImages replaces the images of the named meal on a day.
func SetMealImages(days []models.DayActivity, id, name string, images []string) ([]models.DayActivity, error) {
	return setImages(days, id, name, images, func(d *models.DayActivity) []models.MealStay { return d.Meals })
}

// SetStayImages replaces the images of the named stay on a day.
func SetStayImages(days []models.DayActivity, id, name string, images []string) ([]models.DayActivity, error) {
	return setImages(days, id, name, images, func(d *models.DayActivity) []models.MealStay { return d.Stays })
}

func setImages(days []models.DayActivity, id, name string, images []string, pick func(*models.DayActivity) []models.MealStay) ([]models.DayActivity, error) {
	out := cloneAll(days)
	i := Index(out, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	for j, m := range pick(&out[i]) {
		if m.Name == name {
			pick(&out[i])[j].Images = append([]string{}, images...)
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s on day %s", ErrNotFound, name, id)
}

// NormalizeDays gives every day an id and renumbers the list.
func NormalizeDays(days []models.DayActivity) []models.DayActivity {
	return Renumber(EnsureIDs(days, func(d *models.DayActivity, id string) { d.ID = id }))
}

// EnsureIDs copies items, assigning fresh ids to records that have none.
func EnsureIDs[T Record[T]](items []T, set func(*T, string)) []T {
	out := cloneAll(items)
	for i := range out {
		if out[i].RecordID() == "" {
			set(&out[i], idgen.New())
		}
	}
	return out
}
