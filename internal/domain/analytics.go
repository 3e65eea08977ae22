package domain

import "math"

// Analytics is the backend's aggregate for one day
type Analytics struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

// Percent returns the rounded completion percentage, 0 for an empty day
func (a Analytics) Percent() int {
	if a.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(a.Completed) / float64(a.Total) * 100))
}
