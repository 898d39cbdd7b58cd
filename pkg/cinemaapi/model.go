package cinemaapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a remote identifier. The API sends numbers; strings are accepted too.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("remote id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Hall is the subset of a remote hall used for name matching.
type Hall struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	HallName string `json:"hall_name"`
}

// DisplayName prefers name and falls back to hall_name.
func (h Hall) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.HallName
}

type Film struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	FilmName string `json:"film_name"`
}

func (f Film) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.FilmName
}

type Seance struct {
	ID     ID     `json:"id"`
	HallID ID     `json:"hall_id"`
	FilmID ID     `json:"film_id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

type AllData struct {
	Halls   []Hall   `json:"halls"`
	Films   []Film   `json:"films"`
	Seances []Seance `json:"seances"`
}

// HallConfig is the body of hall/{id}/configuration.
type HallConfig struct {
	Rows   int
	Cols   int
	Layout []string
}

// MovieData is the body of movie create and update requests.
type MovieData struct {
	Name        string
	Description string
	Duration    int
	Country     string
	Poster      string
}

type SeanceData struct {
	HallID ID
	FilmID ID
	Date   string
	Time   string
}
