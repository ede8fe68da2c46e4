package models

import (
	"fmt"
	"time"
)

// Table is one physical dining table. Customers is stored as a JSON
// document column, so every mutation writes the whole table record back
// in one put. Table ids are seeded once (1..10) and never renumbered.
type Table struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Customers []Customer `gorm:"serializer:json" json:"customers"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

// Total sums every seat's total.
func (t *Table) Total() float64 {
	var sum float64
	for i := range t.Customers {
		sum += t.Customers[i].Total()
	}
	return sum
}

// Occupied reports whether at least one seat has items on its order.
// A seat with an empty order does not count as occupying the table.
func (t *Table) Occupied() bool {
	return t.GuestCount() > 0
}

// GuestCount counts seats with a non-empty order.
func (t *Table) GuestCount() int {
	count := 0
	for i := range t.Customers {
		if len(t.Customers[i].Orders) > 0 {
			count++
		}
	}
	return count
}

// AddSeat appends a new seat and returns a pointer to it. The name is
// derived from the current seat count, not a monotonic counter: removing
// "Seat 2" from a three-seat table and adding a seat produces a second
// "Seat 2". History captures names as plain text, so duplicates are
// accepted rather than fixed.
func (t *Table) AddSeat(now time.Time) *Customer {
	t.Customers = append(t.Customers, Customer{
		ID:     now.UnixMilli(),
		Name:   fmt.Sprintf("Seat %d", len(t.Customers)+1),
		Orders: []OrderLine{},
	})
	return &t.Customers[len(t.Customers)-1]
}

// Seat returns the seat at index, or false if the index is stale.
func (t *Table) Seat(index int) (*Customer, bool) {
	if index < 0 || index >= len(t.Customers) {
		return nil, false
	}
	return &t.Customers[index], true
}

// RemoveSeat deletes the seat at index. Unpaid items on that seat are
// discarded, not moved to history. Returns false on a stale index.
func (t *Table) RemoveSeat(index int) bool {
	if index < 0 || index >= len(t.Customers) {
		return false
	}
	t.Customers = append(t.Customers[:index], t.Customers[index+1:]...)
	return true
}

// ClearSeats removes every seat. Used by full-table settlement, which
// unlike per-seat settlement does not keep the seats around.
func (t *Table) ClearSeats() {
	t.Customers = []Customer{}
}
