package utils

// CalculateTotalPages returns how many pages a booking-history listing
// spans, rounding the last partial page up. Zero when there is nothing to
// list or the page size is invalid.
func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// CalculateOffset converts a 1-based page number into the SQL offset used
// by the booking list queries. Out-of-range pages clamp to the first.
func CalculateOffset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}
