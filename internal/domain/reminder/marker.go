package reminder

import "strings"

const markerKeyPrefix = "_reminder_sent_"

// MarkerKey is the event meta key holding the sent marker for iv on the given
// occurrence. Scoping by occurrence keeps one year's markers from suppressing
// the next year's reminders of a recurring event.
func MarkerKey(iv Interval, occurrence Date) string {
	var b strings.Builder
	b.WriteString(markerKeyPrefix)
	b.WriteString(iv.Key)
	b.WriteByte('_')
	b.WriteString(occurrence.String())
	return b.String()
}
