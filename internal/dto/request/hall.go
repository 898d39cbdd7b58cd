package request

import (
	"bytes"
	"encoding/json"
	"strings"
)

type CreateHallRequest struct {
	Name string `json:"name" validate:"required"`
}

type HallConfigRequest struct {
	Rows  int `json:"rows" validate:"min=1,max=100"`
	Seats int `json:"seats" validate:"min=1,max=100"`
}

type ToggleSeatRequest struct {
	Index int `json:"index" validate:"min=0"`
}

// HallPricesRequest carries raw form input; unparsable values fall back to
// the default prices.
type HallPricesRequest struct {
	Normal LooseString `json:"normal"`
	VIP    LooseString `json:"vip"`
}

type SelectHallRequest struct {
	HallID string `json:"hall_id" validate:"required"`
}

// LooseString accepts a JSON string or number and keeps its text.
type LooseString string

func (l *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = LooseString(strings.TrimSpace(s))
		return nil
	}
	*l = LooseString(data)
	return nil
}
