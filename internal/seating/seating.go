// Package seating holds the mutation rules of a hall's seat grid.
package seating

import (
	"fmt"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/pkg/utils"
)

// Cell describes one seat of a rendered grid. Row and Col are 0-based.
type Cell struct {
	Index    int                 `json:"index"`
	Row      int                 `json:"row"`
	Col      int                 `json:"col"`
	State    entity.SeatState    `json:"state"`
	Category entity.SeatCategory `json:"category"`
}

// Grid is a row-major rendering of a hall layout.
type Grid struct {
	Rows  int      `json:"rows"`
	Seats int      `json:"seats"`
	Cells [][]Cell `json:"cells"`
}

// Resize sets the hall dimensions and rebuilds its layout. Cells at (r, c)
// with r < min(oldRows, rows) and c < min(oldSeats, seats) keep their state,
// every other cell becomes normal.
func Resize(h *entity.Hall, rows, seats int) error {
	if rows < 1 || seats < 1 {
		return fmt.Errorf("%w: rows and seats must be positive, got %dx%d", utils.ErrValidation, rows, seats)
	}

	layout := entity.NewLayout(rows, seats)
	keepRows := min(h.Rows, rows)
	keepSeats := min(h.Seats, seats)
	for r := 0; r < keepRows; r++ {
		for c := 0; c < keepSeats; c++ {
			old := r*h.Seats + c
			if old < len(h.Layout) && h.Layout[old].Valid() {
				layout[r*seats+c] = h.Layout[old]
			}
		}
	}

	h.Rows = rows
	h.Seats = seats
	h.Layout = layout
	return nil
}

// Toggle advances layout[index] one step in the normal -> vip -> disabled
// cycle and returns the new state.
func Toggle(h *entity.Hall, index int) (entity.SeatState, error) {
	if index < 0 || index >= len(h.Layout) {
		return "", fmt.Errorf("%w: seat index %d outside layout of %d", utils.ErrValidation, index, len(h.Layout))
	}
	h.Layout[index] = h.Layout[index].Next()
	return h.Layout[index], nil
}

// Normalize makes the layout length match rows*seats, keeping what fits.
// It reports whether the layout changed.
func Normalize(h *entity.Hall) bool {
	if h.Rows < 1 || h.Seats < 1 {
		return false
	}
	if len(h.Layout) == h.Rows*h.Seats {
		return false
	}
	layout := entity.NewLayout(h.Rows, h.Seats)
	copy(layout, h.Layout)
	h.Layout = layout
	return true
}

// Render describes every cell of the hall. A layout shorter than rows*seats
// renders missing cells as normal.
func Render(h entity.Hall) Grid {
	grid := Grid{Rows: h.Rows, Seats: h.Seats, Cells: make([][]Cell, 0, max(h.Rows, 0))}
	for r := 0; r < h.Rows; r++ {
		row := make([]Cell, 0, h.Seats)
		for c := 0; c < h.Seats; c++ {
			index := r*h.Seats + c
			state := entity.SeatNormal
			if index < len(h.Layout) && h.Layout[index].Valid() {
				state = h.Layout[index]
			}
			row = append(row, Cell{
				Index:    index,
				Row:      r,
				Col:      c,
				State:    state,
				Category: state.Category(),
			})
		}
		grid.Cells = append(grid.Cells, row)
	}
	return grid
}
