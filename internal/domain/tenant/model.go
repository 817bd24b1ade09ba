package tenant

import "time"

// Status represents a tenant's residency status.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Tenant is a resident occupying one bed in one room. MonthlyRent and
// RentDueDay are immutable inputs to billing once set; obligations snapshot
// the rent at generation time.
type Tenant struct {
	ID              string     `json:"id"`
	PropertyID      string     `json:"property_id"`
	Name            string     `json:"name"`
	ContactNumber   string     `json:"contact_number"`
	Email           string     `json:"email,omitempty"`
	RoomID          string     `json:"room_id"`
	BedNumber       int        `json:"bed_number"`
	JoinDate        time.Time  `json:"join_date"`
	LeaveDate       *time.Time `json:"leave_date,omitempty"`
	RentDueDay      int        `json:"rent_due_day"`
	SecurityDeposit int        `json:"security_deposit,omitempty"`
	MonthlyRent     int        `json:"monthly_rent"`
	Status          Status     `json:"status"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
}
