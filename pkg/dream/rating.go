package dream

const (
	MinRating = 1
	MaxRating = 5
)

var (
	// LucidityLabels name lucidity ratings 1..5.
	LucidityLabels = []string{"Hazy", "Dim", "Clear", "Vivid", "Lucid"}
	// SleepLabels name sleep-quality ratings 1..5.
	SleepLabels = []string{"Poor", "Fair", "Good", "Great", "Deep"}
)

// ValidRating reports whether r is unset or within [1,5].
func ValidRating(r *int) bool {
	return r == nil || (*r >= MinRating && *r <= MaxRating)
}

// RatingLabel returns labels[r-1], or "" when r is out of range.
func RatingLabel(labels []string, r int) string {
	if r < MinRating || r > len(labels) {
		return ""
	}
	return labels[r-1]
}

// ToggleRating mimics the picker: choosing the current value clears it.
func ToggleRating(current *int, r int) *int {
	if current != nil && *current == r {
		return nil
	}
	if r < MinRating || r > MaxRating {
		return current
	}
	return &r
}
