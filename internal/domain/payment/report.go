package payment

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// OverduePayment is one unpaid obligation annotated with its age and the
// amount still owed.
type OverduePayment struct {
	Payment     Payment `json:"payment"`
	OverdueDays int     `json:"overdue_days"`
	Outstanding int     `json:"outstanding"`
}

// AgingBuckets counts overdue obligations by age band.
type AgingBuckets struct {
	Days0To30  int `json:"0-30_days"`
	Days31To60 int `json:"31-60_days"`
	Days61To90 int `json:"61-90_days"`
	Days90Plus int `json:"90+_days"`
}

// OverdueReport summarizes every unpaid obligation past its due date in a
// property.
type OverdueReport struct {
	Total            int              `json:"total"`
	Buckets          AgingBuckets     `json:"categories"`
	TotalOutstanding int              `json:"total_outstanding"`
	Payments         []OverduePayment `json:"payments"`
}

// Summary aggregates a property's obligations by status.
type Summary struct {
	Total         int `json:"total"`
	Paid          int `json:"paid"`
	Pending       int `json:"pending"`
	Overdue       int `json:"overdue"`
	TotalRent     int `json:"total_rent"`
	PaidAmount    int `json:"paid_amount"`
	PendingAmount int `json:"pending_amount"`
	OverdueAmount int `json:"overdue_amount"`
	TotalLateFees int `json:"total_late_fees"`
}

// CollectionRate returns the percentage of billed rent that has been
// collected.
func (s Summary) CollectionRate() float64 {
	if s.TotalRent == 0 {
		return 0
	}
	return float64(s.PaidAmount) / float64(s.TotalRent) * 100
}

// GenerateOverdueReport builds the aging report for a property at the given
// instant, oldest obligations first.
func (s *Service) GenerateOverdueReport(ctx context.Context, propertyID string, now time.Time) (*OverdueReport, error) {
	unpaid, err := s.repo.ListUnpaid(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("listing unpaid obligations: %w", err)
	}

	report := &OverdueReport{}
	for _, p := range unpaid {
		days := OverdueDays(p.DueDate, now)
		if days <= 0 {
			continue
		}
		switch {
		case days <= 30:
			report.Buckets.Days0To30++
		case days <= 60:
			report.Buckets.Days31To60++
		case days <= 90:
			report.Buckets.Days61To90++
		default:
			report.Buckets.Days90Plus++
		}
		report.TotalOutstanding += p.Outstanding()
		report.Payments = append(report.Payments, OverduePayment{
			Payment:     p,
			OverdueDays: days,
			Outstanding: p.Outstanding(),
		})
	}
	report.Total = len(report.Payments)

	sort.Slice(report.Payments, func(i, j int) bool {
		return report.Payments[i].Payment.DueDate.Before(report.Payments[j].Payment.DueDate)
	})
	return report, nil
}

// GetSummary returns counts and amounts by status for a property, optionally
// scoped to one billing month (empty month means all months).
func (s *Service) GetSummary(ctx context.Context, propertyID, month string) (Summary, error) {
	return s.repo.Summary(ctx, propertyID, month)
}
