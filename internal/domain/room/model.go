package room

import "time"

// RoomType categorizes a room by bed capacity.
type RoomType string

const (
	TypeSingle RoomType = "SINGLE"
	TypeDouble RoomType = "DOUBLE"
	TypeTriple RoomType = "TRIPLE"
	TypeQuad   RoomType = "QUAD"
)

// Room is a rentable unit within a property. OccupiedBeds is a denormalized
// counter kept consistent with the set of active tenants assigned to the room;
// it is mutated only through the occupancy operations.
type Room struct {
	ID           string    `json:"id"`
	PropertyID   string    `json:"property_id"`
	Name         string    `json:"name"`
	Type         RoomType  `json:"type"`
	Floor        *int      `json:"floor,omitempty"`
	TotalBeds    int       `json:"total_beds"`
	OccupiedBeds int       `json:"occupied_beds"`
	MonthlyRent  int       `json:"monthly_rent,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// FreeBeds returns the number of unoccupied beds.
func (r *Room) FreeBeds() int {
	return r.TotalBeds - r.OccupiedBeds
}

// ValidType reports whether t is a known room type.
func ValidType(t RoomType) bool {
	switch t {
	case TypeSingle, TypeDouble, TypeTriple, TypeQuad:
		return true
	}
	return false
}
