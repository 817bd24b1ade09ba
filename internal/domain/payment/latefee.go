package payment

import "time"

// Late fee tiers by calendar days overdue, as a percentage of monthly rent.
// The first five days carry no fee.
const (
	graceDays    = 5
	tierTwoDays  = 15
	tierFiveDays = 30
)

// OverdueDays returns the number of whole calendar days now is past dueDate.
// Zero or negative means the obligation is not yet overdue.
func OverdueDays(dueDate, now time.Time) int {
	return int(dateOnly(now).Sub(dateOnly(dueDate)).Hours() / 24)
}

// LateFee computes the tiered late fee for an obligation. Pure and
// deterministic: the result depends only on the elapsed days and the rent, so
// repeated computation on the same day is idempotent and the fee is replaced,
// never accumulated.
//
// Tiers: 1-5 days 0, 6-15 days 2%, 16-30 days 5%, 31+ days 10%, floored.
func LateFee(dueDate, now time.Time, monthlyRent int) int {
	days := OverdueDays(dueDate, now)
	switch {
	case days <= graceDays:
		return 0
	case days <= tierTwoDays:
		return monthlyRent * 2 / 100
	case days <= tierFiveDays:
		return monthlyRent * 5 / 100
	default:
		return monthlyRent * 10 / 100
	}
}

// dateOnly truncates t to midnight UTC so day arithmetic ignores clock time.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
