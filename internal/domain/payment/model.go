package payment

import "time"

// Status represents the payment state of a rent obligation.
// PENDING and OVERDUE are open states; PAID is terminal.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusOverdue Status = "OVERDUE"
	StatusPaid    Status = "PAID"
)

// Method is how a payment was settled.
type Method string

const (
	MethodCash         Method = "CASH"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodUPI          Method = "UPI"
)

// Payment is one billing month's rent obligation for one tenant.
// RentAmount snapshots the tenant's monthly rent at generation time, so later
// rent changes only affect future obligations. At most one obligation exists
// per (tenant, month).
type Payment struct {
	ID            string     `json:"id"`
	PropertyID    string     `json:"property_id"`
	TenantID      string     `json:"tenant_id"`
	RoomID        string     `json:"room_id"`
	Month         string     `json:"month"` // canonical "YYYY-MM" key
	DueDate       time.Time  `json:"due_date"`
	PaidDate      *time.Time `json:"paid_date,omitempty"`
	RentAmount    int        `json:"rent_amount"`
	PaidAmount    int        `json:"paid_amount"`
	LateFee       int        `json:"late_fee"`
	Status        Status     `json:"status"`
	PaymentMethod *Method    `json:"payment_method,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Open reports whether the obligation can still be mutated by the engine.
func (p *Payment) Open() bool {
	return p.Status == StatusPending || p.Status == StatusOverdue
}

// Outstanding returns the amount still owed including the late fee.
func (p *Payment) Outstanding() int {
	return p.RentAmount - p.PaidAmount + p.LateFee
}

// BillingMonth is one elapsed billing cycle produced by the generator.
type BillingMonth struct {
	Month   string
	DueDate time.Time
}

// ValidMethod reports whether m is a known payment method.
func ValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodUPI:
		return true
	}
	return false
}

// MonthKey returns the canonical "YYYY-MM" key for the month containing t.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
