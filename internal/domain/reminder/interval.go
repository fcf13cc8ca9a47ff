package reminder

// Interval is a named lead time before an event at which exactly one
// notification fires per occurrence.
type Interval struct {
	Key        string
	DaysBefore int // magnitude of the negative offset
	Label      string
}

var (
	Interval30Days = Interval{Key: "30days", DaysBefore: 30, Label: "a month before the event"}
	Interval14Days = Interval{Key: "14days", DaysBefore: 14, Label: "2 weeks before the event"}
	Interval7Days  = Interval{Key: "7days", DaysBefore: 7, Label: "a week before the event"}
	Interval3Days  = Interval{Key: "3days", DaysBefore: 3, Label: "3 days before the event"}
	Interval1Day   = Interval{Key: "1day", DaysBefore: 1, Label: "a day before the event"}
)

var intervals = [...]Interval{
	Interval30Days,
	Interval14Days,
	Interval7Days,
	Interval3Days,
	Interval1Day,
}

// Intervals returns the fixed interval set in evaluation order.
func Intervals() []Interval {
	out := make([]Interval, len(intervals))
	copy(out, intervals[:])
	return out
}

// IntervalByKey looks up an interval by its key.
func IntervalByKey(key string) (Interval, bool) {
	for _, iv := range intervals {
		if iv.Key == key {
			return iv, true
		}
	}
	return Interval{}, false
}

// MaxDaysBefore is the longest lead time in the set.
func MaxDaysBefore() int {
	max := 0
	for _, iv := range intervals {
		if iv.DaysBefore > max {
			max = iv.DaysBefore
		}
	}
	return max
}
