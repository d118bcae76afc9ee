package model

import "time"

// Hall represents a physical screening room with a fixed seat grid.
// The grid defines the coordinate space [1..SeatRows] x [1..SeatCols]
// for every showtime scheduled in the hall; it never changes for the
// lifetime of a showtime.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – hall name, e.g. "Sala A".
//  SeatRows  – number of seating rows (positive).
//  SeatCols  – number of seats per row (positive).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hall struct {
	ID        uint64    `json:"id"`   // halls.id
	Name      string    `json:"name"` // halls.name
	SeatRows  uint32    `json:"rows"` // halls.seat_rows
	SeatCols  uint32    `json:"cols"` // halls.seat_cols
	CreatedAt time.Time `json:"-"`    // halls.created_at
	UpdatedAt time.Time `json:"-"`    // halls.updated_at
}

// Contains reports whether the given seat coordinate lies inside the
// hall's grid.
func (h Hall) Contains(s Seat) bool {
	return s.Row >= 1 && s.Row <= h.SeatRows && s.Col >= 1 && s.Col <= h.SeatCols
}
