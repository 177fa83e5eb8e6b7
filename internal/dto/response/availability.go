package response

// AvailabilityResponse is advisory only. A positive answer is no hold;
// inventory is checked again atomically at confirmation time.
type AvailabilityResponse struct {
	IsAvailable     bool     `json:"is_available"`
	MinAvailability int      `json:"min_availability"`
	BlockingDates   []string `json:"blocking_dates,omitempty"`
}
