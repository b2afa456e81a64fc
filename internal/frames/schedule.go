package frames

// Schedule computes the ordered blur levels for one animation: duration
// steps, rising by strength/duration (truncated) per step, ending at or
// below strength. Config validation guarantees duration <= strength, so the
// step is at least 1 and the schedule is strictly increasing.
func Schedule(strength, duration int) []int {
	step := strength / duration
	levels := make([]int, duration)
	for i := range levels {
		levels[i] = (i + 1) * step
	}
	return levels
}
