package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContext extracts and validates pagination params from the request.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	size := parseIntOr(c.DefaultQuery("size", "10"), DefaultSize)

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return Query{Page: page, Size: size}
}

// Paginate applies limit/offset to a GORM query and returns the pagination metadata.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}

	offset := (q.Page - 1) * q.Size
	if err := db.Offset(offset).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	return Meta(total, q), nil
}

// Meta builds the pagination metadata for a result set of total rows.
func Meta(total int64, q Query) response.Pagination {
	size := q.Size
	if size < 1 {
		size = DefaultSize
	}
	totalPage := int((total + int64(size) - 1) / int64(size))

	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        size,
		HasNextPage: q.Page < totalPage,
	}
}

// Window returns the slice bounds of page q within n items.
func Window(n int, q Query) (int, int) {
	start := (q.Page - 1) * q.Size
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := start + q.Size
	if end > n {
		end = n
	}
	return start, end
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
