package payment

import (
	"time"

	"github.com/pgdesk/pgdesk/internal/domain/tenant"
)

// BillingMonths returns every billing month owed by the tenant whose due date
// has elapsed by now, in chronological order. Months run from the tenant's
// join month through the month containing now; the join month is owed even if
// its due date falls before the join date. Months whose first day is past the
// tenant's leave date are never produced.
//
// The due date is the tenant's rent due day clamped to the month's last day,
// so a given (tenant, month) always maps to the same due date.
func BillingMonths(t *tenant.Tenant, now time.Time) []BillingMonth {
	end := dateOnly(now)
	endMonth := firstOfMonth(end)

	var leaveDate time.Time
	if t.LeaveDate != nil {
		leaveDate = dateOnly(*t.LeaveDate)
	}

	var months []BillingMonth
	for first := firstOfMonth(dateOnly(t.JoinDate)); !first.After(endMonth); first = first.AddDate(0, 1, 0) {
		if t.LeaveDate != nil && first.After(leaveDate) {
			break
		}
		due := DueDate(first.Year(), first.Month(), t.RentDueDay)
		if due.After(end) {
			continue
		}
		months = append(months, BillingMonth{
			Month:   MonthKey(first),
			DueDate: due,
		})
	}
	return months
}

// DueDate builds the due date for a billing month, clamping the day-of-month
// to the month's last day (due day 31 in February becomes Feb 28/29).
func DueDate(year int, month time.Month, dueDay int) time.Time {
	if last := lastDayOfMonth(year, month); dueDay > last {
		dueDay = last
	}
	return time.Date(year, month, dueDay, 0, 0, 0, 0, time.UTC)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the next month normalizes to this month's last day.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
