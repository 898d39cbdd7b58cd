package entity

// SeatState is the category of a single cell in a hall layout.
type SeatState string

const (
	SeatNormal   SeatState = "normal"
	SeatVIP      SeatState = "vip"
	SeatDisabled SeatState = "disabled"
)

// Next advances the interactive toggle cycle normal -> vip -> disabled -> normal.
// Unknown values restart the cycle at normal.
func (s SeatState) Next() SeatState {
	switch s {
	case SeatNormal:
		return SeatVIP
	case SeatVIP:
		return SeatDisabled
	default:
		return SeatNormal
	}
}

func (s SeatState) Valid() bool {
	return s == SeatNormal || s == SeatVIP || s == SeatDisabled
}

// SeatCategory is the ticket category printed on a booking.
type SeatCategory string

const (
	CategoryStandard    SeatCategory = "Standard"
	CategoryVIP         SeatCategory = "VIP"
	CategoryUnavailable SeatCategory = ""
)

func (s SeatState) Category() SeatCategory {
	switch s {
	case SeatVIP:
		return CategoryVIP
	case SeatDisabled:
		return CategoryUnavailable
	default:
		return CategoryStandard
	}
}

// NewLayout returns a rows*seats layout with every cell normal.
func NewLayout(rows, seats int) []SeatState {
	if rows < 1 || seats < 1 {
		return []SeatState{}
	}
	layout := make([]SeatState, rows*seats)
	for i := range layout {
		layout[i] = SeatNormal
	}
	return layout
}
