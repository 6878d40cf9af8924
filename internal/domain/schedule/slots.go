package schedule

// GenerateSlots steps from iv.Start by duration minutes while the candidate
// start is before iv.End. The last candidate may end past iv.End; callers
// rely on that, so it is not trimmed.
func GenerateSlots(iv Interval, duration int) []TimeOfDay {
	if duration <= 0 || iv.Start >= iv.End {
		return nil
	}

	out := make([]TimeOfDay, 0, (int(iv.End-iv.Start)+duration-1)/duration)
	for t := iv.Start; t < iv.End; t = t.Add(duration) {
		out = append(out, t)
	}
	return out
}

// GenerateDaySlots concatenates candidates per interval in order, keeping
// duplicates across intervals.
func GenerateDaySlots(ivs []Interval, duration int) []TimeOfDay {
	var out []TimeOfDay
	for _, iv := range ivs {
		out = append(out, GenerateSlots(iv, duration)...)
	}
	return out
}
