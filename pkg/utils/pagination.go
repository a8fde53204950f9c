package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// GetPaginationParams reads page/page_size query params and returns
// the page, page size and offset, clamped to sane bounds.
func GetPaginationParams(c echo.Context) (page, pageSize, offset int) {
	page = 1
	pageSize = DefaultPageSize

	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && ps > 0 {
		pageSize = ps
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	offset = (page - 1) * pageSize
	return page, pageSize, offset
}
