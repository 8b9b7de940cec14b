// Package pagination implements the uniform page/search contract shared by
// every list endpoint: request normalization, fixed per-resource page
// sizes, bounds checking and the pageable response envelope.
package pagination

import (
	"trackline/internal/errors"
)

// Fixed page size per resource type. These are deliberate per-resource
// constants, not configuration.
const (
	ProjectPageSize = 8
	RunPageSize     = 8
	FeaturePageSize = 8
	ToDoPageSize    = 6
	CommentPageSize = 5
	UserPageSize    = 5
)

// Pageable reports page position alongside a page of items. Page indexes
// are 0-based; LastPageIndex floors at 0 even for an empty result set.
type Pageable struct {
	CurrentPage    int   `json:"current_page"`
	LastPageIndex  int   `json:"last_page_index"`
	TotalPages     int   `json:"total_pages"`
	ElementsInPage int   `json:"elements_in_page"`
	TotalElements  int64 `json:"total_elements"`
}

// NormalizePage turns an optional requested page into a concrete index.
// A missing page defaults to 0; a negative page is rejected before it can
// reach storage.
func NormalizePage(requested *int) (int, error) {
	if requested == nil {
		return 0, nil
	}
	if *requested < 0 {
		return 0, errors.NewBadRequest("page must not be negative")
	}
	return *requested, nil
}

// NormalizePattern turns an optional search pattern into a substring
// filter. A missing pattern becomes the empty string, which matches all.
func NormalizePattern(requested *string) string {
	if requested == nil {
		return ""
	}
	return *requested
}

// TotalPages computes the 0-based page count for a result set.
func TotalPages(totalElements int64, pageSize int) int {
	if totalElements == 0 {
		return 0
	}
	return int((totalElements + int64(pageSize) - 1) / int64(pageSize))
}

// CheckBounds rejects a page index beyond the last page. Page 0 is always
// accepted, even on an empty result set: an empty collection must still
// answer its first page successfully.
func CheckBounds(page int, totalPages int) error {
	lastPageIndex := totalPages - 1
	if lastPageIndex < 0 {
		lastPageIndex = 0
	}
	if page != 0 && page > lastPageIndex {
		return errors.NewBadRequest("page requested does not exist")
	}
	return nil
}

// Envelope is the response wrapper for every search operation.
type Envelope[T any] struct {
	Items    []T      `json:"items"`
	Pageable Pageable `json:"pageable"`
}

// BuildEnvelope wraps one page of already-fetched items. The caller must
// have bounds-checked the page first.
func BuildEnvelope[T any](page int, items []T, totalElements int64, pageSize int) Envelope[T] {
	totalPages := TotalPages(totalElements, pageSize)
	lastPageIndex := totalPages - 1
	if lastPageIndex < 0 {
		lastPageIndex = 0
	}
	if items == nil {
		items = []T{}
	}
	return Envelope[T]{
		Items: items,
		Pageable: Pageable{
			CurrentPage:    page,
			LastPageIndex:  lastPageIndex,
			TotalPages:     totalPages,
			ElementsInPage: len(items),
			TotalElements:  totalElements,
		},
	}
}
