package mei

import "time"

// DueDay is the day of month the DAS is due.
const DueDay = 20

const nearDeadlineDays = 5

// civil drops the clock and zone, keeping only the calendar date as seen in t's location.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextDueDate returns the upcoming 20th: this month's while today is on or
// before it, next month's afterwards.
func NextDueDate(today time.Time) time.Time {
	y, m, d := today.Date()
	if d <= DueDay {
		return time.Date(y, m, DueDay, 0, 0, 0, 0, time.UTC)
	}
	// time.Date normalises month 13 into January of the following year.
	return time.Date(y, m+1, DueDay, 0, 0, 0, 0, time.UTC)
}

// DaysUntilDue counts whole calendar days from today to the next DAS due date.
func DaysUntilDue(today time.Time) int {
	if d := today.Day(); d <= DueDay {
		return DueDay - d
	}
	return int(NextDueDate(today).Sub(civil(today)) / (24 * time.Hour))
}

// IsNearDeadline reports whether the due date is at most five days away,
// the due day itself included.
func IsNearDeadline(today time.Time) bool {
	days := DaysUntilDue(today)
	return days >= 0 && days <= nearDeadlineDays
}

// DueDate is the 20th of the given reference month.
func DueDate(referenceMonth time.Time) time.Time {
	y, m, _ := referenceMonth.Date()
	return time.Date(y, m, DueDay, 0, 0, 0, 0, time.UTC)
}

// OverdueCutoff returns the most recent reference month whose due date is
// already behind today. Pending records up to and including it are late.
func OverdueCutoff(today time.Time) time.Time {
	current := ReferenceMonth(today)
	if today.Day() > DueDay {
		return current
	}
	return current.AddDate(0, -1, 0)
}
