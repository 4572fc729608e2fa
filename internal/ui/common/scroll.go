package common

// ScrollDeltaForWidth calculates proportional horizontal scroll delta.
// Returns max(1, width/factor) to ensure minimum 1 column scroll.
func ScrollDeltaForWidth(width, factor int) int {
	if factor <= 0 {
		return 1
	}
	delta := width / factor
	if delta < 1 {
		delta = 1
	}
	return delta
}
