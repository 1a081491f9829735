package util

import "strconv"

const (
	DefaultPageSize = 15
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*MaxPageSize inside int32.
	MaxPage = (1<<31 - 1) / MaxPageSize
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate converts 1-based page and limit query values into offset and limit.
// Sizes above MaxPageSize are clamped.
func Calculate(page, size int) (offset int, limit int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return (page - 1) * size, size
}
