package core

import "time"

// Bucket labels for the two most recent days. Older expenses bucket under
// their literal date.
const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"
)

// DayBucket is a named group of expenses sharing a display date label.
type DayBucket struct {
	Label    string
	Expenses []Expense
}

// GroupByDay partitions expenses into date buckets evaluated against now.
// An expense dated today labels "Today", yesterday "Yesterday", and any
// other day its own date string. Buckets appear in first-occurrence order
// of the input; the input sequence is never re-sorted. Every expense lands
// in exactly one bucket. An empty input yields an empty, non-nil slice so
// callers can treat it as "no data".
func GroupByDay(expenses []Expense, now time.Time) []DayBucket {
	today := DateOf(now)
	yesterday := DateOf(now.AddDate(0, 0, -1))

	buckets := make([]DayBucket, 0, len(expenses))
	index := make(map[string]int)

	for _, e := range expenses {
		label := e.Date.String()
		switch {
		case e.Date.SameDay(today):
			label = LabelToday
		case e.Date.SameDay(yesterday):
			label = LabelYesterday
		}
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, DayBucket{Label: label})
		}
		buckets[i].Expenses = append(buckets[i].Expenses, e)
	}

	return buckets
}
