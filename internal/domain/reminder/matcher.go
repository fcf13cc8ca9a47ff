package reminder

// TriggerDate is the day on which iv fires for an occurrence on resolved.
func TriggerDate(resolved Date, iv Interval) Date {
	return resolved.AddDays(-iv.DaysBefore)
}

// IsTriggerDay reports whether today is the day the interval named
// intervalKey fires for an occurrence on resolved. Equality is exact: a missed
// day is not caught up later. Unknown keys never match.
func IsTriggerDay(resolved Date, intervalKey string, today Date) bool {
	iv, ok := IntervalByKey(intervalKey)
	if !ok || resolved.IsZero() {
		return false
	}
	return TriggerDate(resolved, iv) == today
}
