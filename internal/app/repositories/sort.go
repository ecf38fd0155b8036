package repositories

import (
	"strings"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// orderBy builds an ORDER BY clause from a sort field and direction. The field
// is resolved through the resource's allow-list map; anything not in the map
// falls back to the default column. Direction is normalized to ASC/DESC.
func orderBy(allowList map[string]string, sortBy, defaultColumn, sortOrder string) string {
	column := defaultColumn
	if mapped, ok := allowList[sortBy]; ok {
		column = mapped
	}

	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}

	return column + " " + direction
}

// pageWindow converts a 1-based page number and page size into an
// offset/limit pair, clamping out-of-range sizes.
func pageWindow(page, pageSize int) (offset uint64, limit int) {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	if page < 1 {
		page = 1
	}
	return uint64((page - 1) * pageSize), pageSize
}
