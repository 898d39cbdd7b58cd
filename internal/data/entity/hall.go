package entity

const (
	DefaultRows        = 5
	DefaultSeats       = 6
	DefaultNormalPrice = 300
	DefaultVIPPrice    = 500
)

type Prices struct {
	Normal int `json:"normal"`
	VIP    int `json:"vip"`
}

func DefaultPrices() Prices {
	return Prices{Normal: DefaultNormalPrice, VIP: DefaultVIPPrice}
}

// Hall is an auditorium with a row-major seat layout and a daily schedule.
// Seat (r, c) lives at Layout[r*Seats+c].
//
// Layout, Sessions, Prices and SalesOpen may be absent in stored data; the
// catalog store back-fills them on every save.
type Hall struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Rows      int         `json:"rows"`
	Seats     int         `json:"seats"`
	Layout    []SeatState `json:"layout"`
	Sessions  []Session   `json:"sessions"`
	Prices    *Prices     `json:"prices,omitempty"`
	SalesOpen *bool       `json:"salesOpen,omitempty"`
}

// EffectivePrices returns the hall prices. A missing price object or a
// non-positive price falls back to the default.
func (h Hall) EffectivePrices() Prices {
	prices := DefaultPrices()
	if h.Prices == nil {
		return prices
	}
	if h.Prices.Normal > 0 {
		prices.Normal = h.Prices.Normal
	}
	if h.Prices.VIP > 0 {
		prices.VIP = h.Prices.VIP
	}
	return prices
}

func (h Hall) IsSalesOpen() bool {
	return h.SalesOpen != nil && *h.SalesOpen
}

// DisplayName falls back to "HALL <id>" for unnamed halls.
func (h Hall) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return "HALL " + h.ID
}

// Clone returns a deep copy so callers never share slices with the store.
func (h Hall) Clone() Hall {
	c := h
	if h.Layout != nil {
		c.Layout = append([]SeatState{}, h.Layout...)
	}
	if h.Sessions != nil {
		c.Sessions = append([]Session{}, h.Sessions...)
	}
	if h.Prices != nil {
		p := *h.Prices
		c.Prices = &p
	}
	if h.SalesOpen != nil {
		open := *h.SalesOpen
		c.SalesOpen = &open
	}
	return c
}
