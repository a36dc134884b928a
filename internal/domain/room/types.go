package room

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return true
	default:
		return false
	}
}

// Bookable reports whether new reservations may target the room at all.
// Occupied rooms stay bookable for non-overlapping dates; maintenance rooms
// are withdrawn entirely.
func (s Status) Bookable() bool {
	return s != StatusMaintenance
}
